package ml

import (
	"context"
	"errors"
	"fmt"
)

// TreeNode is one node of a flattened regression tree. Children are indexes
// into the same slice; leaves carry the value.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Value      float64 `json:"value"`
	IsLeaf     bool    `json:"is_leaf"`
}

// RegressionTree is a flattened tree rooted at index 0.
type RegressionTree []TreeNode

// Evaluate walks the tree from the root. Rows with feature <= threshold go left.
func (t RegressionTree) Evaluate(features []float64) (float64, error) {
	if len(t) == 0 {
		return 0, errors.New("empty tree")
	}
	idx := 0
	for steps := 0; steps <= len(t); steps++ {
		node := t[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(t) {
			return 0, errors.New("invalid tree state")
		}
	}
	return 0, errors.New("tree contains a cycle")
}

const (
	AggregateSum  = "sum"
	AggregateMean = "mean"
)

// TreeEnsemble covers both boosted trees (sum plus base value) and random
// forests (mean of trees).
type TreeEnsemble struct {
	Names     []string         `json:"feature_names"`
	BaseValue float64          `json:"base_value"`
	Aggregate string           `json:"aggregate"`
	Trees     []RegressionTree `json:"trees"`
}

// Predict evaluates every tree and aggregates the leaves.
func (e *TreeEnsemble) Predict(ctx context.Context, features []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(e.Trees) == 0 {
		return 0, ErrModelUnavailable
	}
	if err := checkWidth(features, e.Names); err != nil {
		return 0, err
	}
	total := 0.0
	for i, tree := range e.Trees {
		v, err := tree.Evaluate(features)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		total += v
	}
	if e.Aggregate == AggregateMean {
		return e.BaseValue + total/float64(len(e.Trees)), nil
	}
	return e.BaseValue + total, nil
}

// FeatureNames returns a copy of the artifact column names.
func (e *TreeEnsemble) FeatureNames() []string {
	return append([]string(nil), e.Names...)
}

// Load reads an ensemble artifact; a missing aggregate means sum.
func (e *TreeEnsemble) Load(path string) error {
	var loaded TreeEnsemble
	if err := readJSON(path, &loaded); err != nil {
		return err
	}
	if len(loaded.Trees) == 0 {
		return errors.New("tree ensemble has no trees")
	}
	switch loaded.Aggregate {
	case "":
		loaded.Aggregate = AggregateSum
	case AggregateSum, AggregateMean:
	default:
		return fmt.Errorf("unknown aggregate %q", loaded.Aggregate)
	}
	*e = loaded
	return nil
}
