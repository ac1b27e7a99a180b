package model

import "fmt"

// Load reads a serialized classifier of the given type from path.
func Load(modelType, path string) (Classifier, error) {
	switch modelType {
	case "softmax", "logistic_regression":
		m := &SoftmaxModel{}
		if err := m.Load(path); err != nil {
			return nil, err
		}
		return m, nil
	case "decision_tree":
		m := &DecisionTree{}
		if err := m.Load(path); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported model type %q", modelType)
	}
}
