package model

// RoleCountMatrix is the shared [N genomes x R roles] occurrence-count
// matrix for one evaluation batch. Rows are written once during the
// extraction pass (each worker owns its own row) and the matrix is
// read-only for the rest of the batch.
type RoleCountMatrix struct {
	rows int
	cols int
	data []int
}

func NewRoleCountMatrix(rows, cols int) *RoleCountMatrix {
	return &RoleCountMatrix{
		rows: rows,
		cols: cols,
		data: make([]int, rows*cols),
	}
}

func (m *RoleCountMatrix) Rows() int { return m.rows }
func (m *RoleCountMatrix) Cols() int { return m.cols }

func (m *RoleCountMatrix) At(row, col int) int {
	return m.data[row*m.cols+col]
}

// SetRow copies a genome's count vector into the matrix.
func (m *RoleCountMatrix) SetRow(row int, counts []int) {
	copy(m.data[row*m.cols:(row+1)*m.cols], counts)
}

// Row returns a read-only view of one genome's counts.
func (m *RoleCountMatrix) Row(row int) []int {
	return m.data[row*m.cols : (row+1)*m.cols]
}

// LeaveOneOut builds the [N x R-1] feature matrix for checking one role:
// every column except col, with later columns shifted left by one. The
// layout matches what the per-role classifiers were trained against.
func (m *RoleCountMatrix) LeaveOneOut(col int) [][]int {
	features := make([][]int, m.rows)
	for i := 0; i < m.rows; i++ {
		row := m.Row(i)
		f := make([]int, 0, m.cols-1)
		f = append(f, row[:col]...)
		f = append(f, row[col+1:]...)
		features[i] = f
	}
	return features
}
