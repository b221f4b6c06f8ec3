package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// Forest is a random forest classifier exported as flat JSON node arrays.
type Forest struct {
	modelType string
	classes   []string
	nFeatures int
	trees     []Tree
}

type forestFile struct {
	ModelType string   `json:"model_type"`
	Classes   []string `json:"classes"`
	NFeatures int      `json:"n_features"`
	Trees     []Tree   `json:"trees"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// TreeNode is a split node, or a leaf when Left is -1. Value holds the
// per-class sample weights of the node.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

func (n TreeNode) isLeaf() bool {
	return n.Left == -1
}

func LoadForest(path string) (*Forest, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forest: %w", err)
	}

	var file forestFile
	if err := json.Unmarshal(payload, &file); err != nil {
		return nil, fmt.Errorf("failed to parse forest: %w", err)
	}

	f := &Forest{
		modelType: file.ModelType,
		classes:   file.Classes,
		nFeatures: file.NFeatures,
		trees:     file.Trees,
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid forest %s: %w", path, err)
	}
	return f, nil
}

func (f *Forest) validate() error {
	if len(f.classes) == 0 {
		return errors.New("no classes")
	}
	if f.nFeatures != FeatureCount {
		return fmt.Errorf("n_features is %d, expected %d", f.nFeatures, FeatureCount)
	}
	if len(f.trees) == 0 {
		return errors.New("no trees")
	}

	for t, tree := range f.trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", t)
		}
		for i, node := range tree.Nodes {
			if node.isLeaf() {
				if len(node.Value) != len(f.classes) {
					return fmt.Errorf("tree %d node %d has %d values for %d classes", t, i, len(node.Value), len(f.classes))
				}
				if !validLeafValue(node.Value) {
					return fmt.Errorf("tree %d node %d has no positive class weight", t, i)
				}
				continue
			}
			if node.Feature < 0 || node.Feature >= f.nFeatures {
				return fmt.Errorf("tree %d node %d feature index %d out of range", t, i, node.Feature)
			}
			// Children always follow their parent, which rules out cycles.
			if node.Left <= i || node.Left >= len(tree.Nodes) || node.Right <= i || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has invalid children", t, i)
			}
		}
	}
	return nil
}

// validLeafValue reports whether the weights can be normalized into a class
// distribution.
func validLeafValue(value []float64) bool {
	var total float64
	for _, v := range value {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
		total += v
	}
	return total > 0 && !math.IsInf(total, 0)
}

func (f *Forest) ModelType() string {
	return f.modelType
}

func (f *Forest) Classes() []string {
	classes := make([]string, len(f.classes))
	copy(classes, f.classes)
	return classes
}

func (f *Forest) Predict(features []float64) (string, error) {
	proba, err := f.PredictProba(features)
	if err != nil {
		return "", err
	}
	return f.classes[argmax(proba)], nil
}

// PredictProba averages the normalized leaf distributions of all trees.
func (f *Forest) PredictProba(features []float64) ([]float64, error) {
	if len(features) != f.nFeatures {
		return nil, fmt.Errorf("X has %d features, but forest is expecting %d features as input", len(features), f.nFeatures)
	}

	proba := make([]float64, len(f.classes))
	for _, tree := range f.trees {
		leaf := tree.leaf(features)

		var total float64
		for _, v := range leaf.Value {
			total += v
		}
		for i, v := range leaf.Value {
			proba[i] += v / total
		}
	}

	n := float64(len(f.trees))
	for i := range proba {
		proba[i] /= n
	}
	return proba, nil
}

func (t Tree) leaf(features []float64) TreeNode {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.isLeaf() {
			return node
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}
