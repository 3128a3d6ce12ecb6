package cmd

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/genoqc/internal/util"
	"github.com/yumyai/genoqc/logger"
	refdb "github.com/yumyai/genoqc/pkg/db"
	"github.com/yumyai/genoqc/pkg/model"
	"github.com/yumyai/genoqc/pkg/render"

	_ "modernc.org/sqlite"
)

var (
	genomeDir string
	dataDir   string
	outPath   string
	workers   int
	summary   bool
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a directory of genome records",
	Long: `Evaluate every *.json genome record in a directory against the
reference artifacts (role list, classifiers, completeness groups) and
write a TSV quality table, one row per genome.`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVar(&genomeDir, "genomes", "", "directory of genome JSON records (required)")
	evalCmd.Flags().StringVar(&dataDir, "data", "", "reference data directory (default $GENOQC_DATA or ./data)")
	evalCmd.Flags().StringVar(&outPath, "out", "", "output TSV file (default stdout)")
	evalCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (default GOMAXPROCS)")
	evalCmd.Flags().BoolVar(&summary, "summary", false, "also print a per-genome text summary to stderr")
	evalCmd.MarkFlagRequired("genomes")

	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {

	if dataDir == "" {
		dataDir = os.Getenv("GENOQC_DATA")
	}
	if dataDir == "" {
		logger.Warn("No local environment (GENOQC_DATA), using default value (./data)")
		dataDir = "./data"
	}

	if !util.DirExists(genomeDir) {
		return fmt.Errorf("genome directory %s does not exist", genomeDir)
	}

	refPath := path.Join(dataDir, "refdata.db")
	logger.Info("Open reference database on", zap.String("DB_LOC", refPath))

	ref, err := refdb.Open(refPath)
	if err != nil {
		return err
	}
	defer ref.Close()

	registry, err := ref.LoadRegistry(cmd.Context())
	if err != nil {
		return err
	}

	genomes, err := model.LoadGenomeDir(genomeDir)
	if err != nil {
		return err
	}

	result, err := model.Evaluate(cmd.Context(), registry, genomes, model.Options{Workers: workers})
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	if err := render.WriteTSV(out, result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if summary {
		if err := render.WriteSummary(os.Stderr, result); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	return nil
}
