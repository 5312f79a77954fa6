package matrix

import (
	"gonum.org/v1/gonum/mat"
)

// Dense is a float64 matrix in row major order backed by a gonum
// mat.Dense, i.e. the (i*c + j)-th element of the raw data slice is
// the [i, j]-th element of the matrix.
type Dense struct {
	nrow int
	ncol int
	m    *mat.Dense
}

// NewDense creates a zero filled Dense with r rows and c columns.
// It panics with ErrBadShape if r or c is not positive.
func NewDense(r, c int) *Dense {
	if r <= 0 || c <= 0 {
		panic(ErrBadShape)
	}
	return &Dense{
		nrow: r,
		ncol: c,
		m:    mat.NewDense(r, c, nil),
	}
}

// NewFilledDense creates a Dense with every element set to val.
func NewFilledDense(r, c int, val float64) *Dense {
	d := NewDense(r, c)
	raw := d.Raw()
	for i := range raw {
		raw[i] = val
	}
	return d
}

// get the shape of the matrix
func (d *Dense) Shape() (int, int) {
	return d.nrow, d.ncol
}

// get the [r, c]-th element of the matrix
func (d *Dense) Get(r, c int) float64 {
	if r < 0 || r >= d.nrow || c < 0 || c >= d.ncol {
		panic(ErrIndexOutOfRange)
	}
	return d.m.At(r, c)
}

// set val to the [r, c]-th element of the matrix
func (d *Dense) Set(r, c int, val float64) {
	if r < 0 || r >= d.nrow || c < 0 || c >= d.ncol {
		panic(ErrIndexOutOfRange)
	}
	d.m.Set(r, c, val)
}

// increment the [r, c]-th element of the matrix by val
func (d *Dense) Incr(r, c int, val float64) {
	if r < 0 || r >= d.nrow || c < 0 || c >= d.ncol {
		panic(ErrIndexOutOfRange)
	}
	d.m.Set(r, c, d.m.At(r, c)+val)
}

// GetRow returns a copy of the r-th row of the matrix.
func (d *Dense) GetRow(r int) []float64 {
	if r < 0 || r >= d.nrow {
		panic(ErrIndexOutOfRange)
	}
	return mat.Row(nil, r, d.m)
}

// Raw returns the underlying row major storage. Writes to the returned
// slice are visible through the matrix.
func (d *Dense) Raw() []float64 {
	return d.m.RawMatrix().Data
}

// Clone returns a deep copy of the matrix.
func (d *Dense) Clone() *Dense {
	return &Dense{
		nrow: d.nrow,
		ncol: d.ncol,
		m:    mat.DenseCopyOf(d.m),
	}
}
