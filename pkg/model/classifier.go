// Per-role occurrence classifiers. Training happens offline; the
// evaluator only consumes serialized models through the Classifier
// contract.

package model

import (
	"encoding/json"
	"fmt"
)

// Classifier predicts, for every genome in a batch, a probability
// distribution over the occurrence-count classes {0..Classes-1} of one
// role, given the genome's counts for all other roles.
type Classifier interface {
	// Predict takes an [N x R-1] leave-one-out feature matrix and
	// returns one distribution per genome.
	Predict(features [][]int) ([][]float64, error)
	// Classes is the number of occurrence-count classes the model
	// distinguishes.
	Classes() int
}

// forestNode is one node of a serialized decision tree. Leaves carry a
// class index and have left/right set to -1; internal nodes route on
// feature <= threshold.
type forestNode struct {
	Feature   int     `json:"feat"`
	Threshold float64 `json:"thresh"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Class     int     `json:"class"`
}

func (n *forestNode) leaf() bool {
	return n.Left < 0 && n.Right < 0
}

// ForestClassifier is a decision forest trained offline against the
// leave-one-out count layout. Its distribution is the normalized vote
// share across trees.
type ForestClassifier struct {
	RoleID     string         `json:"role_id"`
	NumClasses int            `json:"classes"`
	NumFeats   int            `json:"features"`
	Trees      [][]forestNode `json:"trees"`
}

// ParseForest decodes and validates a serialized forest. Any structural
// defect is an error: models are all-or-nothing at load time, before the
// batch starts.
func ParseForest(blob []byte) (*ForestClassifier, error) {

	var f ForestClassifier
	if err := json.Unmarshal(blob, &f); err != nil {
		return nil, fmt.Errorf("failed to decode classifier model: %w", err)
	}

	if f.NumClasses < 1 {
		return nil, fmt.Errorf("classifier %s has %d classes", f.RoleID, f.NumClasses)
	}
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("classifier %s has no trees", f.RoleID)
	}

	for ti, tree := range f.Trees {
		if len(tree) == 0 {
			return nil, fmt.Errorf("classifier %s: tree %d is empty", f.RoleID, ti)
		}
		for ni := range tree {
			n := &tree[ni]
			if n.leaf() {
				if n.Class < 0 || n.Class >= f.NumClasses {
					return nil, fmt.Errorf("classifier %s: tree %d node %d has class %d out of range", f.RoleID, ti, ni, n.Class)
				}
				continue
			}
			if n.Left < 0 || n.Left >= len(tree) || n.Right < 0 || n.Right >= len(tree) {
				return nil, fmt.Errorf("classifier %s: tree %d node %d has dangling branch", f.RoleID, ti, ni)
			}
			// Branches must point forward, so every walk terminates.
			if n.Left <= ni || n.Right <= ni {
				return nil, fmt.Errorf("classifier %s: tree %d node %d branches backward", f.RoleID, ti, ni)
			}
			if n.Feature < 0 || (f.NumFeats > 0 && n.Feature >= f.NumFeats) {
				return nil, fmt.Errorf("classifier %s: tree %d node %d routes on feature %d out of range", f.RoleID, ti, ni, n.Feature)
			}
		}
	}

	return &f, nil
}

func (f *ForestClassifier) Classes() int {
	return f.NumClasses
}

// Predict walks every tree for every genome and returns the vote shares.
func (f *ForestClassifier) Predict(features [][]int) ([][]float64, error) {

	out := make([][]float64, len(features))
	for i, row := range features {
		if f.NumFeats > 0 && len(row) != f.NumFeats {
			return nil, fmt.Errorf("classifier %s expects %d features, got %d", f.RoleID, f.NumFeats, len(row))
		}

		votes := make([]float64, f.NumClasses)
		for _, tree := range f.Trees {
			class, err := f.classify(tree, row)
			if err != nil {
				return nil, err
			}
			votes[class]++
		}
		for c := range votes {
			votes[c] /= float64(len(f.Trees))
		}
		out[i] = votes
	}

	return out, nil
}

func (f *ForestClassifier) classify(tree []forestNode, row []int) (int, error) {
	node := &tree[0]
	for !node.leaf() {
		if node.Feature >= len(row) {
			return 0, fmt.Errorf("classifier %s routes on feature %d beyond row width %d", f.RoleID, node.Feature, len(row))
		}
		if float64(row[node.Feature]) <= node.Threshold {
			node = &tree[node.Left]
		} else {
			node = &tree[node.Right]
		}
	}
	return node.Class, nil
}
