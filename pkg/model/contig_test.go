package model

import "testing"

func TestSetContigMetrics(t *testing.T) {

	tests := []struct {
		name        string
		lengths     []int
		wantDNASize int
		wantCount   int
		wantL50     int
		wantN50     int
	}{
		{
			name:        "FourContigs",
			lengths:     []int{100, 200, 300, 400},
			wantDNASize: 1000,
			wantCount:   4,
			wantL50:     2,
			wantN50:     400,
		},
		{
			name:        "Unsorted",
			lengths:     []int{300, 100, 400, 200},
			wantDNASize: 1000,
			wantCount:   4,
			wantL50:     2,
			wantN50:     400,
		},
		{
			name:        "SingleContig",
			lengths:     []int{500},
			wantDNASize: 500,
			wantCount:   1,
			wantL50:     1,
			wantN50:     500,
		},
		{
			name:        "HalfOnFirstContig",
			lengths:     []int{5, 5, 10},
			wantDNASize: 20,
			wantCount:   3,
			wantL50:     1,
			wantN50:     10,
		},
		{
			name:        "EqualContigs",
			lengths:     []int{10, 10, 10},
			wantDNASize: 30,
			wantCount:   3,
			wantL50:     2,
			wantN50:     10,
		},
		{
			name:        "NoContigs",
			lengths:     nil,
			wantDNASize: 0,
			wantCount:   0,
			wantL50:     0,
			wantN50:     0,
		},
		{
			name:        "ZeroLengthContigs",
			lengths:     []int{0, 0},
			wantDNASize: 0,
			wantCount:   2,
			wantL50:     0,
			wantN50:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rpt GenomeReport
			rpt.SetContigMetrics(tt.lengths)

			if rpt.DNASize != tt.wantDNASize {
				t.Errorf("DNASize = %d, want %d", rpt.DNASize, tt.wantDNASize)
			}
			if rpt.ContigCount != tt.wantCount {
				t.Errorf("ContigCount = %d, want %d", rpt.ContigCount, tt.wantCount)
			}
			if rpt.L50 != tt.wantL50 {
				t.Errorf("L50 = %d, want %d", rpt.L50, tt.wantL50)
			}
			if rpt.N50 != tt.wantN50 {
				t.Errorf("N50 = %d, want %d", rpt.N50, tt.wantN50)
			}
		})
	}
}
