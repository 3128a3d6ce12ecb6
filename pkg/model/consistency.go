// Annotation-consistency checking: for each role with a trained model,
// predict its occurrence count from all the other counts and compare
// with what the annotation actually says.

package model

import "fmt"

// roleOutcome is the immutable result of checking one role across the
// batch. Workers produce outcomes in parallel; folding them into the
// reports happens serially, in canonical role order, so reruns are
// bit-identical no matter how the workers were scheduled.
type roleOutcome struct {
	col       int
	roleID    string
	predicted []int
}

// Decode collapses a class distribution to a single predicted count:
// the arg-max, with ties broken toward the lower count.
func Decode(dist []float64) int {
	best := 0
	for c := 1; c < len(dist); c++ {
		if dist[c] > dist[best] {
			best = c
		}
	}
	return best
}

// checkRole runs one role's classifier over the whole batch.
func checkRole(m *RoleCountMatrix, col int, roleID string, c Classifier) (roleOutcome, error) {

	features := m.LeaveOneOut(col)

	dists, err := c.Predict(features)
	if err != nil {
		return roleOutcome{}, fmt.Errorf("role %s: prediction failed: %w", roleID, err)
	}
	if len(dists) != m.Rows() {
		return roleOutcome{}, fmt.Errorf("role %s: classifier returned %d predictions for %d genomes", roleID, len(dists), m.Rows())
	}

	out := roleOutcome{col: col, roleID: roleID, predicted: make([]int, m.Rows())}
	for i, dist := range dists {
		out.predicted[i] = Decode(dist)
	}
	return out, nil
}

// foldOutcome applies one role's predictions to every report. Every
// checked role counts toward ConsistentCount; agreement on the exact
// count earns Fine, agreement on presence/absence alone earns Coarse,
// and anything short of a fine match is recorded as a problem role.
func foldOutcome(reports []*GenomeReport, m *RoleCountMatrix, out roleOutcome) {
	for i, rpt := range reports {
		actual := m.At(i, out.col)
		predicted := out.predicted[i]

		rpt.ConsistentCount++
		switch {
		case predicted == actual:
			rpt.Coarse++
			rpt.Fine++
		case (predicted == 0) == (actual == 0):
			rpt.Coarse++
			rpt.addProblem(out.roleID, false, predicted, actual)
		default:
			rpt.addProblem(out.roleID, false, predicted, actual)
		}
	}
}
