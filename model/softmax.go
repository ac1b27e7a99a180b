package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// SoftmaxModel is a multinomial logistic classifier: one weight row and
// intercept per class, probabilities via softmax over the linear scores.
type SoftmaxModel struct {
	ClassNames []string    `json:"classes"`
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
}

func (m *SoftmaxModel) Classes() []string {
	return m.ClassNames
}

func (m *SoftmaxModel) NumFeatures() int {
	if len(m.Weights) == 0 {
		return 0
	}
	return len(m.Weights[0])
}

func (m *SoftmaxModel) Proba(vector []float64) ([]float64, error) {
	if len(m.Weights) == 0 {
		return nil, errors.New("model not loaded")
	}
	if len(vector) != m.NumFeatures() {
		return nil, fmt.Errorf("expected %d features, got %d", m.NumFeatures(), len(vector))
	}

	scores := make([]float64, len(m.ClassNames))
	maxScore := math.Inf(-1)
	for c, row := range m.Weights {
		score := m.Intercepts[c]
		for i, w := range row {
			score += w * vector[i]
		}
		scores[c] = score
		if score > maxScore {
			maxScore = score
		}
	}

	// shift by the max score for numerical stability
	sum := 0.0
	probs := make([]float64, len(scores))
	for c, score := range scores {
		probs[c] = math.Exp(score - maxScore)
		sum += probs[c]
	}
	for c := range probs {
		probs[c] /= sum
	}
	return probs, nil
}

// Load reads the serialized model and checks structural consistency.
func (m *SoftmaxModel) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var loaded SoftmaxModel
	if err := json.Unmarshal(payload, &loaded); err != nil {
		return err
	}
	if len(loaded.ClassNames) == 0 {
		return errors.New("model has no classes")
	}
	if len(loaded.Weights) != len(loaded.ClassNames) || len(loaded.Intercepts) != len(loaded.ClassNames) {
		return errors.New("model weights and classes disagree")
	}
	width := len(loaded.Weights[0])
	for _, row := range loaded.Weights {
		if len(row) != width {
			return errors.New("model weight rows have uneven width")
		}
	}
	*m = loaded
	return nil
}
