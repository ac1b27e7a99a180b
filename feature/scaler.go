package feature

import "errors"

// StandardScaler applies the standardization fitted at training time. The
// parameters are immutable process-wide state; nothing is recomputed per request.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Validate checks internal consistency of the fitted parameters.
func (s *StandardScaler) Validate() error {
	if len(s.Mean) == 0 {
		return errors.New("scaler has no fitted parameters")
	}
	if len(s.Mean) != len(s.Scale) {
		return &DimensionMismatchError{Want: len(s.Mean), Got: len(s.Scale)}
	}
	for _, sc := range s.Scale {
		if sc == 0 {
			return errors.New("scaler has a zero scale component")
		}
	}
	return nil
}

// NumFeatures reports the dimensionality the scaler was fitted on.
func (s *StandardScaler) NumFeatures() int {
	return len(s.Mean)
}

// Transform returns (x - mean) / scale elementwise. A length mismatch is an
// internal invariant violation (encoder/artifact drift) and must be treated as
// fatal by callers, never silently handled.
func (s *StandardScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.Mean) {
		return nil, &DimensionMismatchError{Want: len(s.Mean), Got: len(vector)}
	}
	scaled := make([]float64, len(vector))
	for i, x := range vector {
		scaled[i] = (x - s.Mean[i]) / s.Scale[i]
	}
	return scaled, nil
}
