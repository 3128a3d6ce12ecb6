// Batch evaluation: the orchestration described in the package docs.
// All reference artifacts are loaded before the batch starts; the batch
// itself performs no I/O.

package model

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yumyai/genoqc/logger"
)

// Registry carries the preloaded reference artifacts for one run: the
// canonical role map, the per-column classifiers (roles without a
// usable model are simply absent), and the completeness groups (nil
// disables completeness scoring). It is read-only during evaluation.
type Registry struct {
	Roles       *RoleMap
	Classifiers map[int]Classifier
	Groups      []*UniversalRoleGroup
}

// BatchResult is the finished output of one evaluation run.
type BatchResult struct {
	RunID   string
	Reports []*GenomeReport
}

type Options struct {
	// Workers caps the parallel per-genome and per-role passes.
	// Zero means GOMAXPROCS.
	Workers int
}

// Evaluate runs the full quality pipeline over a batch of genomes:
// per-genome role counting and contig metrics, per-role consistency
// checking, and per-genome completeness scoring. Reports come back in
// input order and, given the same genomes and artifacts, re-running
// produces identical reports.
func Evaluate(ctx context.Context, reg *Registry, genomes []*Genome, opts Options) (*BatchResult, error) {

	if reg == nil || reg.Roles == nil {
		return nil, fmt.Errorf("evaluation registry has no role map")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	runID := uuid.NewString()
	logger.Info("Starting evaluation batch",
		zap.String("run_id", runID),
		zap.Int("genomes", len(genomes)),
		zap.Int("roles", reg.Roles.Len()),
		zap.Int("classifiers", len(reg.Classifiers)),
		zap.Int("groups", len(reg.Groups)),
		zap.Int("workers", workers))

	reports := make([]*GenomeReport, len(genomes))
	matrix := NewRoleCountMatrix(len(genomes), reg.Roles.Len())

	// Pass 1: role counts and contig metrics, one worker per genome.
	// Each worker writes only its own report slot and matrix row.
	g1, ctx1 := errgroup.WithContext(ctx)
	g1.SetLimit(workers)
	for i := range genomes {
		i := i
		g1.Go(func() error {
			if err := ctx1.Err(); err != nil {
				return err
			}
			genome := genomes[i]
			rpt := &GenomeReport{
				ID:     genome.ID,
				Name:   genome.Name,
				Domain: genome.Domain,
			}
			counts := CountRoles(genome, reg.Roles, rpt)
			rpt.SetContigMetrics(genome.ContigLengths())
			matrix.SetRow(i, counts)
			reports[i] = rpt
			return nil
		})
	}
	if err := g1.Wait(); err != nil {
		return nil, err
	}

	// Pass 2: consistency, one worker per role with a classifier.
	// Workers only fill their own outcome slot; the fold below is
	// serial and in canonical column order.
	cols := make([]int, 0, len(reg.Classifiers))
	for col := range reg.Classifiers {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	outcomes := make([]roleOutcome, len(cols))
	g2, ctx2 := errgroup.WithContext(ctx)
	g2.SetLimit(workers)
	for k, col := range cols {
		k, col := k, col
		g2.Go(func() error {
			if err := ctx2.Err(); err != nil {
				return err
			}
			roleID := reg.Roles.IDs()[col]
			out, err := checkRole(matrix, col, roleID, reg.Classifiers[col])
			if err != nil {
				return err
			}
			outcomes[k] = out
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}
	for _, out := range outcomes {
		foldOutcome(reports, matrix, out)
	}

	// Pass 3: completeness, one worker per genome again.
	if len(reg.Groups) > 0 {
		g3, ctx3 := errgroup.WithContext(ctx)
		g3.SetLimit(workers)
		for i := range reports {
			i := i
			g3.Go(func() error {
				if err := ctx3.Err(); err != nil {
					return err
				}
				ApplyCompleteness(reports[i], matrix.Row(i), reg.Roles, reg.Groups)
				return nil
			})
		}
		if err := g3.Wait(); err != nil {
			return nil, err
		}
	}

	logger.Info("Evaluation batch finished", zap.String("run_id", runID))

	return &BatchResult{RunID: runID, Reports: reports}, nil
}
