package model

import (
	"math"
	"strings"
	"testing"
)

func TestScoreDeterminism(t *testing.T) {

	// fine 80%, complete 100%, contamination 0%, hypothetical 10%,
	// 5 contigs: 80*1.09 + 100 - 0 + 90 - 0.05 = 277.15
	rpt := GenomeReport{
		ConsistentCount:   100,
		Coarse:            90,
		Fine:              80,
		CompleteCount:     50,
		PegCount:          100,
		HypotheticalCount: 10,
		ContigCount:       5,
	}

	want := 277.15
	if got := rpt.Score(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Score() = %v, want %v", got, want)
	}
}

func TestZeroDivisionGuards(t *testing.T) {

	var rpt GenomeReport

	if got := rpt.CoarsePercent(); got != 0 {
		t.Errorf("CoarsePercent() = %v, want 0", got)
	}
	if got := rpt.FinePercent(); got != 0 {
		t.Errorf("FinePercent() = %v, want 0", got)
	}
	if got := rpt.CompletePercent(); got != 0 {
		t.Errorf("CompletePercent() = %v, want 0", got)
	}
	if got := rpt.LocalFamilyPercent(); got != 0 {
		t.Errorf("LocalFamilyPercent() = %v, want 0", got)
	}

	// These two flip to 100 when there is no evidence at all.
	if got := rpt.ContaminationPercent(); got != 100 {
		t.Errorf("ContaminationPercent() = %v, want 100", got)
	}
	if got := rpt.HypotheticalPercent(); got != 100 {
		t.Errorf("HypotheticalPercent() = %v, want 100", got)
	}

	if math.IsNaN(rpt.Score()) {
		t.Error("Score() is NaN for an empty report")
	}
}

func TestIsGoodSeed(t *testing.T) {

	tests := []struct {
		name    string
		domain  string
		seedLen int
		count   int
		want    bool
	}{
		{name: "BacteriaTypical", domain: "Bacteria", seedLen: 340, count: 1, want: true},
		{name: "BacteriaLowerBound", domain: "Bacteria", seedLen: 209, count: 1, want: true},
		{name: "BacteriaUpperBound", domain: "Bacteria", seedLen: 405, count: 1, want: true},
		{name: "BacteriaTooShort", domain: "Bacteria", seedLen: 208, count: 1, want: false},
		{name: "BacteriaTooLong", domain: "Bacteria", seedLen: 406, count: 1, want: false},
		{name: "ArchaeaTypical", domain: "Archaea", seedLen: 500, count: 1, want: true},
		{name: "ArchaeaShort", domain: "Archaea", seedLen: 250, count: 1, want: false},
		{name: "NoSeed", domain: "Bacteria", seedLen: 0, count: 0, want: false},
		{name: "DuplicatedSeed", domain: "Bacteria", seedLen: 340, count: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rpt := GenomeReport{
				Domain:      tt.domain,
				SeedProtein: strings.Repeat("M", tt.seedLen),
				SeedCount:   tt.count,
			}
			if got := rpt.IsGoodSeed(); got != tt.want {
				t.Errorf("IsGoodSeed() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestContaminationPercent(t *testing.T) {

	rpt := GenomeReport{
		CompleteCount:      99,
		ContaminationCount: 1,
	}

	// 100 * 1 / (1 + 99)
	if got := rpt.ContaminationPercent(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("ContaminationPercent() = %v, want 1", got)
	}
}
