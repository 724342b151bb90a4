package matrix

import "math"

// Dense is a row-major float64 matrix. matchcore only ever holds one shape
// in it — the randomized solver's fractional LP solution, read and mutated
// cell by cell as BvN decomposition rounds it toward an integral assignment
// — so it only needs bounds-checked single-cell access, snapping values
// near the unit interval's edges, and cloning, not a general
// linear-algebra interface.
type Dense struct {
	r, c int       // rows, columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) bounds(row, col int) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return ErrIndexOutOfBounds
	}
	return nil
}

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	if err := m.bounds(row, col); err != nil {
		return 0, err
	}
	return m.data[row*m.c+col], nil
}

// Set assigns value v at (row, col). NaN and ±Inf are rejected: every Dense
// cell in this module holds an affinity or a probability, never a sentinel.
func (m *Dense) Set(row, col int, v float64) error {
	if err := m.bounds(row, col); err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNaNInf
	}
	m.data[row*m.c+col] = v
	return nil
}

// SnapUnitInterval rounds values within eps of 0 or 1 to exactly 0 or 1. This
// is the Stage 1 → Stage 2 numeric handoff of the randomized solver: LP
// solvers return values that are only numerically close to the box boundary,
// and BvN decomposition requires exact 0/1 detection.
func (m *Dense) SnapUnitInterval(eps float64) {
	for i, v := range m.data {
		switch {
		case v <= eps:
			m.data[i] = 0
		case v >= 1-eps:
			m.data[i] = 1
		}
	}
}

// Clone returns a deep copy, used to keep the fractional LP solution intact
// while BvN decomposition mutates a scratch copy toward an integral matching.
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)
	return &Dense{r: m.r, c: m.c, data: cp}
}
