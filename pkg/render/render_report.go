// Package render serializes finished quality reports. It never mutates
// a report; a batch is read-only by the time it reaches this package.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/yumyai/genoqc/pkg/model"
)

var tsvColumns = []string{
	"genome_id", "name", "domain", "group",
	"score", "coarse_pct", "fine_pct", "complete_pct", "contamination_pct",
	"hypothetical_pct", "plfam_pct",
	"peg_count", "dna_size", "contig_count", "l50", "n50",
	"good_seed", "problem_roles",
}

// WriteTSV writes one row per genome. The leading comment line carries
// the run id so a result file can be traced back to its batch.
func WriteTSV(w io.Writer, res *model.BatchResult) error {

	if _, err := fmt.Fprintf(w, "# genoqc run %s\n", res.RunID); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Join(tsvColumns, "\t")); err != nil {
		return err
	}

	for _, rpt := range res.Reports {
		row := fmt.Sprintf("%s\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t%d\t%d\t%d\t%d\t%t\t%d\n",
			rpt.ID, rpt.Name, rpt.Domain, rpt.GroupName,
			rpt.Score(), rpt.CoarsePercent(), rpt.FinePercent(),
			rpt.CompletePercent(), rpt.ContaminationPercent(),
			rpt.HypotheticalPercent(), rpt.LocalFamilyPercent(),
			rpt.PegCount, rpt.DNASize, rpt.ContigCount, rpt.L50, rpt.N50,
			rpt.IsGoodSeed(), len(rpt.Problems))
		if _, err := io.WriteString(w, row); err != nil {
			return err
		}
	}

	return nil
}

// WriteSummary writes a human-readable block per genome, including the
// roles that failed a check.
func WriteSummary(w io.Writer, res *model.BatchResult) error {

	for _, rpt := range res.Reports {
		fmt.Fprintf(w, "Genome %s (%s)\n", rpt.ID, rpt.Name)
		fmt.Fprintf(w, "  score %.2f, fine %.2f%%, coarse %.2f%%\n",
			rpt.Score(), rpt.FinePercent(), rpt.CoarsePercent())

		if rpt.HasCompleteness() {
			fmt.Fprintf(w, "  group %s: complete %.2f%%, contamination %.2f%%\n",
				rpt.GroupName, rpt.CompletePercent(), rpt.ContaminationPercent())
		} else {
			fmt.Fprintf(w, "  no completeness data\n")
		}

		fmt.Fprintf(w, "  contigs %d, dna %d bp, L50 %d, N50 %d\n",
			rpt.ContigCount, rpt.DNASize, rpt.L50, rpt.N50)

		if !rpt.IsGoodSeed() {
			fmt.Fprintf(w, "  seed protein not valid (count %d, length %d)\n",
				rpt.SeedCount, len(rpt.SeedProtein))
		}

		for _, p := range rpt.Problems {
			kind := "predicted"
			if p.Universal {
				kind = "universal"
			}
			fmt.Fprintf(w, "  role %s (%s): expected %d, found %d\n",
				p.RoleID, kind, p.Predicted, p.Actual)
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}
