package feature

import (
	"errors"
	"testing"
)

func TestValidateAcceptsPlausibleInput(t *testing.T) {
	if err := validInput().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRange(t *testing.T) {
	in := validInput()
	in.QualityOfSleep = 11

	err := in.Validate()
	var rng *RangeError
	if !errors.As(err, &rng) {
		t.Fatalf("expected RangeError, got %v", err)
	}
	if rng.Field != "quality_of_sleep" {
		t.Fatalf("unexpected field: %q", rng.Field)
	}
}

func TestValidateZeroMeansMissing(t *testing.T) {
	in := validInput()
	in.Age = 0

	err := in.Validate()
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "age" {
		t.Fatalf("unexpected field: %q", missing.Field)
	}
}

func TestValidateZeroStepsAllowed(t *testing.T) {
	in := validInput()
	in.DailySteps = 0
	in.PhysicalActivityLevel = 0

	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBloodPressureOrdering(t *testing.T) {
	in := validInput()
	in.SystolicBP = 80
	in.DiastolicBP = 90

	err := in.Validate()
	var rng *RangeError
	if !errors.As(err, &rng) {
		t.Fatalf("expected RangeError, got %v", err)
	}
}
