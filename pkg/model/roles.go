// Canonical role list and per-genome role counting.

package model

import (
	"fmt"
	"regexp"
	"strings"
)

// SeedRole is the universal marker whose translation fingerprints a
// genome for completeness-group matching. Essentially every prokaryote
// carries exactly one copy.
const SeedRole = "Phenylalanyl-tRNA synthetase alpha chain"

var (
	// EC and TC numbers are annotation decoration, not part of the role.
	ecNumber = regexp.MustCompile(`\s*\(\s*EC[\s:]+[0-9.\-]+\s*\)`)
	tcNumber = regexp.MustCompile(`\s*\(\s*TC[\s:]+[0-9A-Za-z.\-]+\s*\)`)
	spaces   = regexp.MustCompile(`\s+`)
)

// NormalizeRole canonicalizes a role string for lookup: EC/TC numbers
// and trailing annotator comments are stripped, whitespace is collapsed
// and case is folded.
func NormalizeRole(role string) string {
	r := role
	if i := strings.Index(r, " #"); i >= 0 {
		r = r[:i]
	}
	r = ecNumber.ReplaceAllString(r, "")
	r = tcNumber.ReplaceAllString(r, "")
	r = spaces.ReplaceAllString(r, " ")
	return strings.ToLower(strings.TrimSpace(r))
}

// SplitFunction breaks a feature's functional assignment into its
// individual roles. " / " joins domains of a multifunctional protein,
// " @ " joins alternate activities, and "; " joins vaguer compounds;
// all three yield separate roles.
func SplitFunction(function string) []string {
	parts := []string{function}
	for _, sep := range []string{" / ", " @ ", "; "} {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}

	var roles []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, p)
		}
	}
	return roles
}

// RoleMap is the canonical ordered list of roles of interest. The order
// fixes the column layout of every count matrix and classifier feature
// vector in a run, so it is established once at load time and never
// changes afterwards.
type RoleMap struct {
	ids     []string
	columns map[string]int
	byName  map[string]string
	seedCol int
}

// NewRoleMap builds the role map from parallel id/description slices in
// canonical order. Descriptions are matched after normalization; the
// seed role does not have to be present.
func NewRoleMap(ids, descriptions []string) (*RoleMap, error) {

	if len(ids) != len(descriptions) {
		return nil, fmt.Errorf("role map has %d ids but %d descriptions", len(ids), len(descriptions))
	}

	rm := &RoleMap{
		ids:     make([]string, len(ids)),
		columns: make(map[string]int, len(ids)),
		byName:  make(map[string]string, len(ids)),
		seedCol: -1,
	}
	copy(rm.ids, ids)

	seedName := NormalizeRole(SeedRole)
	for i, id := range ids {
		if _, ok := rm.columns[id]; ok {
			return nil, fmt.Errorf("duplicate role id %s in role list", id)
		}
		rm.columns[id] = i

		name := NormalizeRole(descriptions[i])
		rm.byName[name] = id
		if name == seedName {
			rm.seedCol = i
		}
	}

	return rm, nil
}

// Len is the number of roles of interest (the matrix width R).
func (rm *RoleMap) Len() int {
	return len(rm.ids)
}

// IDs returns the role ids in canonical column order.
func (rm *RoleMap) IDs() []string {
	return rm.ids
}

// Column maps a role id to its matrix column.
func (rm *RoleMap) Column(roleID string) (int, bool) {
	col, ok := rm.columns[roleID]
	return col, ok
}

// RoleID resolves a raw role string (as found in a feature's function)
// to a canonical role id.
func (rm *RoleMap) RoleID(role string) (string, bool) {
	id, ok := rm.byName[NormalizeRole(role)]
	return id, ok
}

// CountRoles scans a genome's features, returning its occurrence-count
// vector over the canonical roles and filling the report's annotation
// tallies and seed protein along the way. Counts are unbounded; the
// classifiers are trained against the same convention.
func CountRoles(g *Genome, rm *RoleMap, rpt *GenomeReport) []int {

	counts := make([]int, rm.Len())

	for i := range g.Features {
		f := &g.Features[i]
		if !f.IsPeg() {
			continue
		}

		rpt.PegCount++
		if strings.Contains(strings.ToLower(f.Function), "hypothetical protein") {
			rpt.HypotheticalCount++
		}
		if f.LocalFamily != "" {
			rpt.LocalFamilyCount++
		}

		for _, role := range SplitFunction(f.Function) {
			id, ok := rm.RoleID(role)
			if !ok {
				continue
			}
			col := rm.columns[id]
			counts[col]++

			if col == rm.seedCol {
				rpt.SeedCount++
				// Keep the longest translation for length validation.
				if len(f.Protein) > len(rpt.SeedProtein) {
					rpt.SeedProtein = f.Protein
				}
			}
		}
	}

	return counts
}
