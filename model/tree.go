package model

import (
	"encoding/json"
	"errors"
	"os"
)

// DecisionTree is a serialized classification tree. Nodes are stored flat;
// children reference node indices. Leaves carry the training-sample class
// counts so the tree can emit a probability distribution, not just a label.
type DecisionTree struct {
	ClassNames   []string   `json:"classes"`
	FeatureCount int        `json:"feature_count"`
	Nodes        []TreeNode `json:"nodes"`
}

type TreeNode struct {
	FeatureIdx  int     `json:"feature_idx"`
	Threshold   float64 `json:"threshold"`
	LeftChild   int     `json:"left_child"`
	RightChild  int     `json:"right_child"`
	ClassCounts []int   `json:"class_counts"`
	IsLeaf      bool    `json:"is_leaf"`
}

func (dt *DecisionTree) Classes() []string {
	return dt.ClassNames
}

func (dt *DecisionTree) NumFeatures() int {
	return dt.FeatureCount
}

func (dt *DecisionTree) Proba(vector []float64) ([]float64, error) {
	if len(dt.Nodes) == 0 {
		return nil, errors.New("model not loaded")
	}
	idx := 0
	for {
		node := dt.Nodes[idx]
		if node.IsLeaf {
			return leafDistribution(node.ClassCounts, len(dt.ClassNames))
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(vector) {
			return nil, errors.New("feature index out of range")
		}
		if vector[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.Nodes) {
			return nil, errors.New("invalid tree state")
		}
	}
}

func leafDistribution(counts []int, numClasses int) ([]float64, error) {
	if len(counts) != numClasses {
		return nil, errors.New("leaf class counts and classes disagree")
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return nil, errors.New("leaf has no training samples")
	}
	probs := make([]float64, numClasses)
	for i, c := range counts {
		probs[i] = float64(c) / float64(total)
	}
	return probs, nil
}

// Load reads the serialized tree and checks structural consistency.
func (dt *DecisionTree) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var loaded DecisionTree
	if err := json.Unmarshal(payload, &loaded); err != nil {
		return err
	}
	if len(loaded.ClassNames) == 0 {
		return errors.New("model has no classes")
	}
	if len(loaded.Nodes) == 0 {
		return errors.New("model has no nodes")
	}
	if loaded.FeatureCount <= 0 {
		return errors.New("model has no feature count")
	}
	for _, node := range loaded.Nodes {
		if node.IsLeaf && len(node.ClassCounts) != len(loaded.ClassNames) {
			return errors.New("leaf class counts and classes disagree")
		}
	}
	*dt = loaded
	return nil
}
