// Genome records as consumed by the evaluator. One JSON document per
// genome, produced upstream by the annotation pipeline.

package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Contig struct {
	ID     string `json:"id"`
	Length int    `json:"length"`
}

type Feature struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function string `json:"function"`
	// Translation of the coding sequence, empty for non-protein features.
	Protein string `json:"protein_translation,omitempty"`
	// Local protein-family assignment (PLF id), empty when unassigned.
	LocalFamily string `json:"plfam_id,omitempty"`
}

type Genome struct {
	ID       string    `json:"id"`
	Name     string    `json:"scientific_name"`
	Domain   string    `json:"domain"`
	Contigs  []Contig  `json:"contigs"`
	Features []Feature `json:"features"`
}

// ContigLengths returns the raw length list used for the assembly metrics.
func (g *Genome) ContigLengths() []int {
	lengths := make([]int, len(g.Contigs))
	for i, c := range g.Contigs {
		lengths[i] = c.Length
	}
	return lengths
}

// IsPeg reports whether the feature is a protein-coding gene.
func (f *Feature) IsPeg() bool {
	return f.Type == "CDS" || f.Type == "peg"
}

// LoadGenome reads a single genome record from a JSON file.
func LoadGenome(path string) (*Genome, error) {

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genome file %s: %w", path, err)
	}

	var g Genome
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("failed to parse genome file %s: %w", path, err)
	}

	if g.ID == "" {
		return nil, fmt.Errorf("genome file %s has no id", path)
	}

	return &g, nil
}

// LoadGenomeDir reads every *.json genome record under dir, ordered by
// file name so batches are stable between runs.
func LoadGenomeDir(dir string) ([]*Genome, error) {

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read genome directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no genome records found in %s", dir)
	}

	genomes := make([]*Genome, 0, len(paths))
	for _, p := range paths {
		g, err := LoadGenome(p)
		if err != nil {
			return nil, err
		}
		genomes = append(genomes, g)
	}

	return genomes, nil
}
