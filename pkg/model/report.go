package model

// ProblemRole records a role whose observed occurrence count disagreed
// with its expectation. Universal marks completeness markers; for those
// the prediction is always 1.
type ProblemRole struct {
	RoleID    string `json:"role_id"`
	Universal bool   `json:"universal"`
	Predicted int    `json:"predicted"`
	Actual    int    `json:"actual"`
}

// GenomeReport is the per-genome quality accumulator. It is owned by a
// single evaluation batch: the extraction, contig, consistency and
// completeness passes each write into their own slice of counters, and
// no counter is ever decremented. Once the batch returns the report is
// read-only.
type GenomeReport struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`

	// Annotation tallies.
	PegCount          int `json:"peg_count"`
	HypotheticalCount int `json:"hypothetical_count"`
	LocalFamilyCount  int `json:"plfam_count"`

	// Assembly metrics.
	DNASize     int `json:"dna_size"`
	ContigCount int `json:"contig_count"`
	L50         int `json:"l50"`
	N50         int `json:"n50"`

	// Consistency tallies. Fine <= Coarse <= ConsistentCount always.
	ConsistentCount int `json:"consistent_count"`
	Coarse          int `json:"coarse"`
	Fine            int `json:"fine"`

	// Completeness tallies.
	CompleteCount      int    `json:"complete_count"`
	MissingCount       int    `json:"missing_count"`
	ContaminationCount int    `json:"contamination_count"`
	GroupName          string `json:"group_name"`

	// Roles that failed a check, in check order.
	Problems []ProblemRole `json:"problematic_roles"`

	// Longest observed seed-protein translation and how many times the
	// seed role occurred. A valid organism has exactly one.
	SeedProtein string `json:"seed_protein"`
	SeedCount   int    `json:"seed_count"`
}

// Seed-protein length windows (residues) for IsGoodSeed, per domain.
const (
	archaeaSeedMin = 293
	archaeaSeedMax = 652
	defaultSeedMin = 209
	defaultSeedMax = 405
)

func percent(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return 100.0 * float64(num) / float64(den)
}

// CoarsePercent is the share of checked roles whose predicted and actual
// counts agreed on presence vs absence.
func (r *GenomeReport) CoarsePercent() float64 {
	return percent(r.Coarse, r.ConsistentCount)
}

// FinePercent is the share of checked roles whose counts matched exactly.
func (r *GenomeReport) FinePercent() float64 {
	return percent(r.Fine, r.ConsistentCount)
}

// CompletePercent is the share of marker roles found at least once.
func (r *GenomeReport) CompletePercent() float64 {
	return percent(r.CompleteCount-r.MissingCount, r.CompleteCount)
}

// ContaminationPercent measures excess marker occurrences. With no
// markers checked there is no evidence of a clean genome, so the rate
// defaults to 100.
func (r *GenomeReport) ContaminationPercent() float64 {
	if r.CompleteCount == 0 {
		return 100
	}
	return percent(r.ContaminationCount, r.ContaminationCount+r.CompleteCount)
}

// HypotheticalPercent is the share of pegs annotated as hypothetical
// proteins. A genome with no pegs is all-hypothetical by convention.
func (r *GenomeReport) HypotheticalPercent() float64 {
	if r.PegCount == 0 {
		return 100
	}
	return percent(r.HypotheticalCount, r.PegCount)
}

// LocalFamilyPercent is the share of pegs with a local-family assignment.
func (r *GenomeReport) LocalFamilyPercent() float64 {
	return percent(r.LocalFamilyCount, r.PegCount)
}

// Score is the composite quality score used to rank genomes. Downstream
// consumers tie-break on the exact value, so the formula must not be
// reordered or refactored into different float operations.
func (r *GenomeReport) Score() float64 {
	return r.FinePercent()*1.09 +
		r.CompletePercent() -
		5*r.ContaminationPercent() +
		(100 - r.HypotheticalPercent()) -
		float64(r.ContigCount)/100.0
}

// IsGoodSeed reports whether exactly one seed protein was found and its
// length is plausible for the genome's domain.
func (r *GenomeReport) IsGoodSeed() bool {
	if r.SeedCount != 1 {
		return false
	}
	n := len(r.SeedProtein)
	if r.Domain == "Archaea" {
		return n >= archaeaSeedMin && n <= archaeaSeedMax
	}
	return n >= defaultSeedMin && n <= defaultSeedMax
}

// HasCompleteness reports whether completeness scoring ran for this
// genome (a group was assigned).
func (r *GenomeReport) HasCompleteness() bool {
	return r.GroupName != ""
}

func (r *GenomeReport) addProblem(roleID string, universal bool, predicted, actual int) {
	r.Problems = append(r.Problems, ProblemRole{
		RoleID:    roleID,
		Universal: universal,
		Predicted: predicted,
		Actual:    actual,
	})
}
