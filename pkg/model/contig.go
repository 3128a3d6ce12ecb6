package model

import "sort"

// SetContigMetrics fills the assembly metrics from a genome's contig
// length list. L50 is the minimum number of largest contigs whose
// combined length reaches half the genome; N50 is the length of the
// contig at which that threshold is crossed. An empty assembly leaves
// both at zero instead of dividing by zero.
func (r *GenomeReport) SetContigMetrics(lengths []int) {

	total := 0
	for _, n := range lengths {
		total += n
	}

	r.DNASize = total
	r.ContigCount = len(lengths)

	if total == 0 {
		r.L50 = 0
		r.N50 = 0
		return
	}

	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Ints(sorted)

	// Scan from the largest contig down until half the genome is covered.
	// N50 reports the length at which the threshold was reached: the
	// previously scanned contig, or the largest one when it covers half
	// the genome on its own.
	half := (total + 1) / 2
	accumulated := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		accumulated += sorted[i]
		if accumulated >= half {
			if i == len(sorted)-1 {
				r.N50 = sorted[i]
			} else {
				r.N50 = sorted[i+1]
			}
			r.L50 = len(sorted) - i
			return
		}
	}
}
