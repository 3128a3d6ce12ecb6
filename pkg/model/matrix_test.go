package model

import (
	"reflect"
	"testing"
)

func TestLeaveOneOut(t *testing.T) {

	m := NewRoleCountMatrix(2, 4)
	m.SetRow(0, []int{1, 2, 3, 4})
	m.SetRow(1, []int{5, 6, 7, 8})

	tests := []struct {
		name string
		col  int
		want [][]int
	}{
		{name: "FirstColumn", col: 0, want: [][]int{{2, 3, 4}, {6, 7, 8}}},
		{name: "MiddleColumn", col: 2, want: [][]int{{1, 2, 4}, {5, 6, 8}}},
		{name: "LastColumn", col: 3, want: [][]int{{1, 2, 3}, {5, 6, 7}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.LeaveOneOut(tt.col); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LeaveOneOut(%d) = %v, want %v", tt.col, got, tt.want)
			}
		})
	}
}

func TestMatrixAccessors(t *testing.T) {

	m := NewRoleCountMatrix(3, 2)
	m.SetRow(1, []int{9, 7})

	if got := m.At(1, 0); got != 9 {
		t.Errorf("At(1,0) = %d, want 9", got)
	}
	if got := m.Row(1); !reflect.DeepEqual(got, []int{9, 7}) {
		t.Errorf("Row(1) = %v, want [9 7]", got)
	}
	if m.Rows() != 3 || m.Cols() != 2 {
		t.Errorf("dims = %dx%d, want 3x2", m.Rows(), m.Cols())
	}
}
