package predict

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"chronopulse/artifact"
	"chronopulse/feature"
)

func newTestService(t *testing.T, cacheSize int) *Service {
	t.Helper()
	dir := t.TempDir()
	paths := artifact.Paths{
		Model:        filepath.Join(dir, "model.json"),
		Scaler:       filepath.Join(dir, "scaler.json"),
		FeatureNames: filepath.Join(dir, "feature_names.json"),
		Metadata:     filepath.Join(dir, "model_info.json"),
	}
	files := map[string]string{
		paths.Model: `{
			"classes": ["Insomnia", "No Disorder", "Sleep Apnea"],
			"intercepts": [-0.2, 0.4, -0.5],
			"weights": [
				[-1.0, -0.8, 1.1, 0.0],
				[0.8, 0.9, -0.9, -0.5],
				[-0.2, -0.3, 0.2, 1.2]
			]
		}`,
		paths.Scaler:       `{"mean": [7.1, 7.3, 5.4, 0.03], "scale": [0.8, 1.2, 1.8, 0.17]}`,
		paths.FeatureNames: `["Sleep Duration", "Quality of Sleep", "Stress Level", "BMI Category_Obese"]`,
		paths.Metadata: `{
			"model_name": "Logistic Regression",
			"model_type": "softmax",
			"accuracy": 0.91,
			"classes": ["Insomnia", "No Disorder", "Sleep Apnea"]
		}`,
	}
	for path, payload := range files {
		if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	bundle, err := artifact.Load(paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	service, err := NewService(bundle, cacheSize, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return service
}

func moderateInput() feature.RawInput {
	return feature.RawInput{
		Age:                   30,
		Gender:                "Male",
		Occupation:            "Engineer",
		SleepDuration:         7,
		QualityOfSleep:        7,
		PhysicalActivityLevel: 60,
		StressLevel:           5,
		BMICategory:           "Normal",
		HeartRate:             70,
		DailySteps:            7000,
		SystolicBP:            120,
		DiastolicBP:           80,
	}
}

func TestPredictDeterminism(t *testing.T) {
	service := newTestService(t, 0)

	first, err := service.Predict(context.Background(), moderateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.Predict(context.Background(), moderateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("prediction is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestPredictProbabilityInvariant(t *testing.T) {
	service := newTestService(t, 0)

	resp, err := service.Predict(context.Background(), moderateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := 0.0
	for label, p := range resp.Probabilities {
		if p < 0 || p > 1 {
			t.Fatalf("probability for %q out of range: %v", label, p)
		}
		sum += p
	}
	if sum < 1-1e-6 || sum > 1+1e-6 {
		t.Fatalf("probabilities sum to %v", sum)
	}
	if len(resp.Probabilities) != 3 {
		t.Fatalf("expected a probability for every class, got %v", resp.Probabilities)
	}
}

func TestPredictScenarioModerate(t *testing.T) {
	service := newTestService(t, 0)

	resp, err := service.Predict(context.Background(), moderateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	valid := map[string]bool{"No Disorder": true, "Insomnia": true, "Sleep Apnea": true}
	if !valid[resp.Prediction] {
		t.Fatalf("unexpected label %q", resp.Prediction)
	}
	if resp.HealthScore < 60 {
		t.Fatalf("expected moderate-to-good health score, got %v", resp.HealthScore)
	}
	if len(resp.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}
	seen := make(map[string]bool)
	for _, rec := range resp.Recommendations {
		if seen[rec] {
			t.Fatalf("duplicate recommendation %q", rec)
		}
		seen[rec] = true
	}
	if resp.ModelInfo.ModelName == "" || resp.ModelInfo.Accuracy == 0 {
		t.Fatalf("model metadata missing: %+v", resp.ModelInfo)
	}
}

func TestPredictScenarioStressedShortSleeper(t *testing.T) {
	service := newTestService(t, 0)

	in := moderateInput()
	in.SleepDuration = 3
	in.QualityOfSleep = 4
	in.StressLevel = 10
	in.PhysicalActivityLevel = 20

	resp, err := service.Predict(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.HealthScore >= 40 {
		t.Fatalf("expected low health score, got %v", resp.HealthScore)
	}
	if resp.Prediction != "Insomnia" {
		t.Fatalf("expected Insomnia for this profile, got %q", resp.Prediction)
	}

	var hasDuration, hasStress bool
	for _, rec := range resp.Recommendations {
		if strings.Contains(rec, "7-9 hours") {
			hasDuration = true
		}
		if strings.Contains(rec, "stress management") {
			hasStress = true
		}
	}
	if !hasDuration || !hasStress {
		t.Fatalf("expected duration- and stress-specific entries, got %v", resp.Recommendations)
	}
}

func TestPredictRejectsUnrecognizedCategory(t *testing.T) {
	service := newTestService(t, 0)

	in := moderateInput()
	in.Gender = "Unknown"

	_, err := service.Predict(context.Background(), in)
	var category *feature.UnrecognizedCategoryError
	if !errors.As(err, &category) {
		t.Fatalf("expected UnrecognizedCategoryError, got %v", err)
	}
	if !IsValidationError(err) {
		t.Fatal("unrecognized category should be a validation error")
	}
}

func TestPredictRejectsMissingField(t *testing.T) {
	service := newTestService(t, 0)

	in := moderateInput()
	in.HeartRate = 0

	_, err := service.Predict(context.Background(), in)
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPredictCacheReturnsSameResponse(t *testing.T) {
	service := newTestService(t, 8)

	first, err := service.Predict(context.Background(), moderateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.Predict(context.Background(), moderateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected the cached response on the second call")
	}
}

func TestPredictCanceledContext(t *testing.T) {
	service := newTestService(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.Predict(ctx, moderateInput()); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestInternalErrorIsNotValidation(t *testing.T) {
	err := &InternalError{ReferenceID: "ref-1", Err: errors.New("boom")}
	if IsValidationError(err) {
		t.Fatal("internal errors must not be treated as validation errors")
	}
	if !strings.Contains(err.Error(), "ref-1") {
		t.Fatalf("expected reference id in message, got %q", err.Error())
	}
}
