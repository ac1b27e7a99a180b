package feature

// RawInput is the untyped request payload for a single prediction.
type RawInput struct {
	Age                   float64 `json:"age"`
	Gender                string  `json:"gender"`
	Occupation            string  `json:"occupation"`
	SleepDuration         float64 `json:"sleep_duration"`
	QualityOfSleep        float64 `json:"quality_of_sleep"`
	PhysicalActivityLevel float64 `json:"physical_activity_level"`
	StressLevel           float64 `json:"stress_level"`
	BMICategory           string  `json:"bmi_category"`
	HeartRate             float64 `json:"heart_rate"`
	DailySteps            float64 `json:"daily_steps"`
	SystolicBP            float64 `json:"systolic_bp"`
	DiastolicBP           float64 `json:"diastolic_bp"`
}

type fieldRange struct {
	name  string
	value float64
	min   float64
	max   float64
	// zero value is physiologically impossible, so a zero means the field
	// was never provided rather than set to zero
	zeroMeansMissing bool
}

// Validate checks presence, physiological ranges and categorical vocabulary.
// It returns the first violation found, in field order.
func (in RawInput) Validate() error {
	ranges := []fieldRange{
		{"age", in.Age, 1, 120, true},
		{"sleep_duration", in.SleepDuration, 0.5, 24, true},
		{"quality_of_sleep", in.QualityOfSleep, 1, 10, true},
		{"physical_activity_level", in.PhysicalActivityLevel, 0, 1440, false},
		{"stress_level", in.StressLevel, 1, 10, true},
		{"heart_rate", in.HeartRate, 30, 220, true},
		{"daily_steps", in.DailySteps, 0, 200000, false},
		{"systolic_bp", in.SystolicBP, 70, 250, true},
		{"diastolic_bp", in.DiastolicBP, 40, 150, true},
	}
	for _, r := range ranges {
		if r.zeroMeansMissing && r.value == 0 {
			return &MissingFieldError{Field: r.name}
		}
		if r.value < r.min || r.value > r.max {
			return &RangeError{Field: r.name, Value: r.value, Min: r.min, Max: r.max}
		}
	}
	if in.SystolicBP <= in.DiastolicBP {
		return &RangeError{Field: "systolic_bp", Value: in.SystolicBP, Min: in.DiastolicBP, Max: 250}
	}

	categoricals := []struct {
		name  string
		value string
		vocab []string
	}{
		{"gender", in.Gender, Genders},
		{"occupation", in.Occupation, Occupations},
		{"bmi_category", in.BMICategory, BMICategories},
	}
	for _, c := range categoricals {
		if c.value == "" {
			return &MissingFieldError{Field: c.name}
		}
		if !contains(c.vocab, c.value) {
			return &UnrecognizedCategoryError{Field: c.name, Value: c.value}
		}
	}
	return nil
}

func contains(vocab []string, value string) bool {
	for _, v := range vocab {
		if v == value {
			return true
		}
	}
	return false
}
