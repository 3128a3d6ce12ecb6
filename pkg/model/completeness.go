// Completeness and contamination scoring against universal role groups.
// A genome is matched to the tightest taxonomic group whose reference
// seed protein it resembles, then every marker role of that group is
// expected exactly once.

package model

import "sort"

// Protein 8-mers; the reference profiles were built with the same size.
const seedKmerSize = 8

// KmerProfile is the set of kmers occurring in a seed-protein sequence.
type KmerProfile map[string]struct{}

// NewKmerProfile extracts all overlapping kmers from a protein sequence.
// Sequences shorter than one kmer yield an empty profile.
func NewKmerProfile(seq string) KmerProfile {
	p := make(KmerProfile)
	for i := 0; i+seedKmerSize <= len(seq); i++ {
		p[seq[i:i+seedKmerSize]] = struct{}{}
	}
	return p
}

// Similarity counts the kmers shared with another profile.
func (p KmerProfile) Similarity(other KmerProfile) int {
	// Iterate over the smaller set.
	if len(other) < len(p) {
		p, other = other, p
	}
	shared := 0
	for k := range p {
		if _, ok := other[k]; ok {
			shared++
		}
	}
	return shared
}

// UniversalRoleGroup is one row of the completeness reference table: a
// taxonomic grouping with a membership threshold, a reference seed
// profile, and the set of roles every member carries exactly once. The
// root group has MinScore 0 and matches any genome with a seed protein.
type UniversalRoleGroup struct {
	Name     string
	MinScore int
	Profile  KmerProfile
	Markers  []string
}

// MatchGroup picks the tightest applicable group for a seed protein: a
// group is a candidate when the shared-kmer score reaches its own
// threshold, and among candidates the highest threshold wins, ties
// broken by higher computed score, then by table order. Returns nil
// when no group matches (possible only without a root group).
func MatchGroup(seedProtein string, groups []*UniversalRoleGroup) *UniversalRoleGroup {

	profile := NewKmerProfile(seedProtein)

	var best *UniversalRoleGroup
	bestScore := -1
	for _, g := range groups {
		score := profile.Similarity(g.Profile)
		if score < g.MinScore {
			continue
		}
		if best == nil || g.MinScore > best.MinScore ||
			(g.MinScore == best.MinScore && score > bestScore) {
			best = g
			bestScore = score
		}
	}
	return best
}

// ApplyCompleteness matches the genome to a group and checks every
// marker role's occurrence count against the expected single copy.
// Genomes without a seed protein carry no completeness data at all.
func ApplyCompleteness(rpt *GenomeReport, counts []int, rm *RoleMap, groups []*UniversalRoleGroup) {

	if rpt.SeedCount == 0 || len(groups) == 0 {
		return
	}

	group := MatchGroup(rpt.SeedProtein, groups)
	if group == nil {
		return
	}
	rpt.GroupName = group.Name

	markers := make([]string, len(group.Markers))
	copy(markers, group.Markers)
	sort.Strings(markers)

	for _, roleID := range markers {
		col, ok := rm.Column(roleID)
		if !ok {
			continue
		}

		rpt.CompleteCount++
		switch n := counts[col]; {
		case n == 1:
			// Compliant.
		case n == 0:
			rpt.MissingCount++
			rpt.addProblem(roleID, true, 1, 0)
		default:
			rpt.ContaminationCount += n - 1
			rpt.addProblem(roleID, true, 1, n)
		}
	}
}
