package feature

import "fmt"

// Encode turns a validated RawInput into the numeric vector the model expects,
// producing exactly one value per name in featureNames, in that order. The
// positional contract comes from the artifact bundle; computation order here is
// irrelevant because the lookup is by declared name.
func Encode(in RawInput, featureNames []string) ([]float64, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	values := map[string]float64{
		"Age":                     in.Age,
		"Sleep Duration":          in.SleepDuration,
		"Quality of Sleep":        in.QualityOfSleep,
		"Physical Activity Level": in.PhysicalActivityLevel,
		"Stress Level":            in.StressLevel,
		"Heart Rate":              in.HeartRate,
		"Daily Steps":             in.DailySteps,
		"Systolic_BP":             in.SystolicBP,
		"Diastolic_BP":            in.DiastolicBP,
	}

	values["Gender_Male"] = oneHot(in.Gender == "Male")
	for _, occ := range Occupations[1:] {
		values["Occupation_"+occ] = oneHot(in.Occupation == occ)
	}
	for _, bmi := range BMICategories[1:] {
		values["BMI Category_"+bmi] = oneHot(in.BMICategory == bmi)
	}

	vector := make([]float64, len(featureNames))
	for i, name := range featureNames {
		value, ok := values[name]
		if !ok {
			// schema drift between the bundle and this encoder, never a
			// per-request condition
			return nil, fmt.Errorf("encoder cannot produce feature %q", name)
		}
		vector[i] = value
	}
	return vector, nil
}

func oneHot(set bool) float64 {
	if set {
		return 1
	}
	return 0
}
