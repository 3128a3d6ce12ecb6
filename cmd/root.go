// Package cmd is the command line surface of genoqc.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/genoqc/logger"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "genoqc",
	Short: "Evaluate the quality of annotated microbial genomes",
	Long: `genoqc scores assembled and annotated genome records: annotation
consistency against per-role classifiers, completeness and contamination
against universal marker roles, and contig fragmentation metrics.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.InitLogger(logger.ParseLevel(os.Getenv("GENOQC_LOG"))); err != nil {
			return err
		}
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env found, using local environment")
		}
		return nil
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed:", zap.String("error message", err.Error()))
		os.Exit(1)
	}
}
