package feature

import (
	"errors"
	"math"
	"testing"
)

func TestScalerTransform(t *testing.T) {
	scaler := &StandardScaler{
		Mean:  []float64{10, 0, -5},
		Scale: []float64{2, 1, 5},
	}
	if err := scaler.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scaled, err := scaler.Transform([]float64{12, 3, -5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{1, 3, 0}
	for i := range want {
		if math.Abs(scaled[i]-want[i]) > 1e-12 {
			t.Fatalf("expected %v, got %v", want, scaled)
		}
	}
}

func TestScalerDimensionMismatch(t *testing.T) {
	scaler := &StandardScaler{Mean: []float64{0, 0}, Scale: []float64{1, 1}}

	_, err := scaler.Transform([]float64{1, 2, 3})
	var mismatch *DimensionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DimensionMismatchError, got %v", err)
	}
	if mismatch.Want != 2 || mismatch.Got != 3 {
		t.Fatalf("unexpected detail: %+v", mismatch)
	}
}

func TestScalerValidate(t *testing.T) {
	bad := &StandardScaler{Mean: []float64{1, 2}, Scale: []float64{1}}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for uneven parameter lengths")
	}

	zero := &StandardScaler{Mean: []float64{1}, Scale: []float64{0}}
	if err := zero.Validate(); err == nil {
		t.Fatal("expected error for zero scale")
	}
}
