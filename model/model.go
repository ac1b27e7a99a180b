// Package model holds the trained classifier implementations. Models are
// opaque scoring functions: any family that can emit a class-probability
// distribution over the fixed label set plugs in behind Classifier.
package model

// Classifier is a trained, read-only scoring function. Implementations must be
// deterministic and safe for concurrent use after loading.
type Classifier interface {
	// Classes returns the label set in fixed training order.
	Classes() []string
	// NumFeatures returns the input width the model was trained on.
	NumFeatures() int
	// Proba returns the per-class probability distribution for a scaled
	// feature vector, aligned with Classes().
	Proba(vector []float64) ([]float64, error)
}

// ArgMax picks the predicted class index from a distribution. Ties resolve to
// the lowest index for reproducibility.
func ArgMax(probs []float64) int {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best
}
