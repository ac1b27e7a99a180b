// Package artifact loads the trained model, fitted scaler, feature-name list
// and metadata produced by the training pipeline. A Bundle is loaded exactly
// once at startup and is immutable afterwards, so concurrent request handling
// needs no coordination.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"chronopulse/feature"
	"chronopulse/model"
)

// Paths locates the four artifact files on disk.
type Paths struct {
	Model        string `yaml:"model"`
	Scaler       string `yaml:"scaler"`
	FeatureNames string `yaml:"feature_names"`
	Metadata     string `yaml:"metadata"`
}

// Metadata describes the trained model, echoed back to clients.
type Metadata struct {
	ModelName string   `json:"model_name"`
	ModelType string   `json:"model_type"`
	Accuracy  float64  `json:"accuracy"`
	Precision float64  `json:"precision"`
	Recall    float64  `json:"recall"`
	F1Score   float64  `json:"f1_score"`
	Classes   []string `json:"classes"`
}

// Prediction is a classifier result: the argmax label plus the full
// per-class probability distribution.
type Prediction struct {
	Label         string
	Probabilities map[string]float64
}

// Bundle is the process-wide read-only artifact state.
type Bundle struct {
	classifier   model.Classifier
	scaler       *feature.StandardScaler
	featureNames []string
	meta         Metadata
}

// Load reads and cross-validates all four artifacts. Any missing, unreadable
// or mutually inconsistent artifact is a configuration error: the service must
// refuse to start rather than serve against a broken pipeline.
func Load(paths Paths) (*Bundle, error) {
	meta, err := loadMetadata(paths.Metadata)
	if err != nil {
		return nil, fmt.Errorf("load metadata: %w", err)
	}

	names, err := loadFeatureNames(paths.FeatureNames)
	if err != nil {
		return nil, fmt.Errorf("load feature names: %w", err)
	}

	classifier, err := model.Load(meta.ModelType, paths.Model)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	scaler, err := loadScaler(paths.Scaler)
	if err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}

	if scaler.NumFeatures() != len(names) {
		return nil, fmt.Errorf("scaler fitted on %d features, feature list has %d",
			scaler.NumFeatures(), len(names))
	}
	if classifier.NumFeatures() != len(names) {
		return nil, fmt.Errorf("model trained on %d features, feature list has %d",
			classifier.NumFeatures(), len(names))
	}
	if !sameStrings(meta.Classes, classifier.Classes()) {
		return nil, errors.New("metadata classes and model classes disagree")
	}

	return &Bundle{
		classifier:   classifier,
		scaler:       scaler,
		featureNames: names,
		meta:         meta,
	}, nil
}

// FeatureNames returns the ordered feature list the model was trained on.
func (b *Bundle) FeatureNames() []string {
	names := make([]string, len(b.featureNames))
	copy(names, b.featureNames)
	return names
}

// Metadata returns the training metadata record.
func (b *Bundle) Metadata() Metadata {
	meta := b.meta
	meta.Classes = append([]string(nil), b.meta.Classes...)
	return meta
}

// Scale applies the fitted standardization to an encoded vector.
func (b *Bundle) Scale(vector []float64) ([]float64, error) {
	return b.scaler.Transform(vector)
}

// Classify runs the classifier on a scaled vector. The label is the argmax
// class; ties resolve to the lowest class index.
func (b *Bundle) Classify(scaled []float64) (Prediction, error) {
	probs, err := b.classifier.Proba(scaled)
	if err != nil {
		return Prediction{}, err
	}
	classes := b.classifier.Classes()
	dist := make(map[string]float64, len(classes))
	for i, class := range classes {
		dist[class] = probs[i]
	}
	return Prediction{
		Label:         classes[model.ArgMax(probs)],
		Probabilities: dist,
	}, nil
}

func loadMetadata(path string) (Metadata, error) {
	var meta Metadata
	payload, err := os.ReadFile(path)
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(payload, &meta); err != nil {
		return meta, err
	}
	if meta.ModelType == "" {
		return meta, errors.New("metadata has no model type")
	}
	if len(meta.Classes) == 0 {
		return meta, errors.New("metadata has no classes")
	}
	return meta, nil
}

func loadFeatureNames(path string) ([]string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(payload, &names); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.New("feature list is empty")
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("duplicate feature name %q", name)
		}
		seen[name] = true
	}
	return names, nil
}

func loadScaler(path string) (*feature.StandardScaler, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scaler feature.StandardScaler
	if err := json.Unmarshal(payload, &scaler); err != nil {
		return nil, err
	}
	if err := scaler.Validate(); err != nil {
		return nil, err
	}
	return &scaler, nil
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
