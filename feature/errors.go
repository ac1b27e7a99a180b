package feature

import "fmt"

// MissingFieldError reports a required raw input field that was not provided.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// RangeError reports a numeric field outside its documented physiological range.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("field %q value %g out of range [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

// UnrecognizedCategoryError reports a categorical value outside the closed
// vocabulary the model was trained on. A wrong encoding would silently corrupt
// the prediction, so this is never defaulted.
type UnrecognizedCategoryError struct {
	Field string
	Value string
}

func (e *UnrecognizedCategoryError) Error() string {
	return fmt.Sprintf("unrecognized value %q for field %q", e.Value, e.Field)
}

// DimensionMismatchError reports a vector whose length disagrees with the
// fitted scaler parameters. This signals encoder/artifact drift, not bad input.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: want %d, got %d", e.Want, e.Got)
}
