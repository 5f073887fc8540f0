// Package matrix implements square matrices over a native prime field,
// stored row-major.
package matrix

import (
	"errors"
	"fmt"

	"github.com/vocdoni/poseidon254/field"
)

// ErrSingular is returned when inverting a matrix with zero determinant.
var ErrSingular = errors.New("matrix: singular matrix")

// Matrix is an immutable n x n matrix.
type Matrix[E any, PE field.Element[E]] struct {
	n    int
	elem []E
}

// New wraps a row-major slice of n*n entries. The slice is copied.
func New[E any, PE field.Element[E]](n int, rowMajor []E) (Matrix[E, PE], error) {
	if n <= 0 || len(rowMajor) != n*n {
		return Matrix[E, PE]{}, fmt.Errorf("matrix: expected %d entries for size %d, got %d", n*n, n, len(rowMajor))
	}
	elem := make([]E, len(rowMajor))
	copy(elem, rowMajor)
	return Matrix[E, PE]{n: n, elem: elem}, nil
}

// Identity returns the n x n identity matrix.
func Identity[E any, PE field.Element[E]](n int) Matrix[E, PE] {
	elem := make([]E, n*n)
	for i := range n {
		PE(&elem[i*n+i]).SetOne()
	}
	return Matrix[E, PE]{n: n, elem: elem}
}

// Size returns n.
func (m Matrix[E, PE]) Size() int { return m.n }

// At returns the entry at row i, column j.
func (m Matrix[E, PE]) At(i, j int) E { return m.elem[i*m.n+j] }

// RowMajor returns a copy of the entries in row-major order.
func (m Matrix[E, PE]) RowMajor() []E {
	out := make([]E, len(m.elem))
	copy(out, m.elem)
	return out
}

// Mul returns m * o.
func (m Matrix[E, PE]) Mul(o Matrix[E, PE]) Matrix[E, PE] {
	if m.n != o.n {
		panic(fmt.Sprintf("matrix: size mismatch %d != %d", m.n, o.n))
	}
	n := m.n
	out := make([]E, n*n)
	var prod E
	for i := range n {
		for j := range n {
			acc := PE(&out[i*n+j])
			for k := range n {
				PE(&prod).Mul(&m.elem[i*n+k], &o.elem[k*n+j])
				acc.Add(acc, &prod)
			}
		}
	}
	return Matrix[E, PE]{n: n, elem: out}
}

// MulVec returns the column product m * v.
func (m Matrix[E, PE]) MulVec(v []E) []E {
	if len(v) != m.n {
		panic(fmt.Sprintf("matrix: vector length %d, expected %d", len(v), m.n))
	}
	out := make([]E, m.n)
	var prod E
	for i := range m.n {
		acc := PE(&out[i])
		for j := range m.n {
			PE(&prod).Mul(&m.elem[i*m.n+j], &v[j])
			acc.Add(acc, &prod)
		}
	}
	return out
}

// Transpose returns the transpose of m.
func (m Matrix[E, PE]) Transpose() Matrix[E, PE] {
	n := m.n
	out := make([]E, n*n)
	for i := range n {
		for j := range n {
			out[j*n+i] = m.elem[i*n+j]
		}
	}
	return Matrix[E, PE]{n: n, elem: out}
}

// Equal reports whether m and o have the same size and entries.
func (m Matrix[E, PE]) Equal(o Matrix[E, PE]) bool {
	if m.n != o.n {
		return false
	}
	for i := range m.elem {
		if !PE(&m.elem[i]).Equal(&o.elem[i]) {
			return false
		}
	}
	return true
}

// IsIdentity reports whether m is the identity matrix.
func (m Matrix[E, PE]) IsIdentity() bool {
	return m.Equal(Identity[E, PE](m.n))
}

// IsSymmetric reports whether m equals its transpose.
func (m Matrix[E, PE]) IsSymmetric() bool {
	return m.Equal(m.Transpose())
}

// Inverse computes m^-1 by Gauss-Jordan elimination.
func (m Matrix[E, PE]) Inverse() (Matrix[E, PE], error) {
	n := m.n
	a := m.RowMajor()
	inv := Identity[E, PE](n).elem

	var f, tmp E
	for col := range n {
		pivot := -1
		for r := col; r < n; r++ {
			if !PE(&a[r*n+col]).IsZero() {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return Matrix[E, PE]{}, ErrSingular
		}
		if pivot != col {
			swapRows(a, n, pivot, col)
			swapRows(inv, n, pivot, col)
		}

		PE(&f).Inverse(&a[col*n+col])
		for j := range n {
			PE(&a[col*n+j]).Mul(&a[col*n+j], &f)
			PE(&inv[col*n+j]).Mul(&inv[col*n+j], &f)
		}

		for r := range n {
			if r == col || PE(&a[r*n+col]).IsZero() {
				continue
			}
			f = a[r*n+col]
			for j := range n {
				PE(&tmp).Mul(&f, &a[col*n+j])
				PE(&a[r*n+j]).Sub(&a[r*n+j], &tmp)
				PE(&tmp).Mul(&f, &inv[col*n+j])
				PE(&inv[r*n+j]).Sub(&inv[r*n+j], &tmp)
			}
		}
	}
	return Matrix[E, PE]{n: n, elem: inv}, nil
}

// IsInvertible reports whether m has a non-zero determinant.
func (m Matrix[E, PE]) IsInvertible() bool {
	_, err := m.Inverse()
	return err == nil
}

func swapRows[E any](a []E, n, i, j int) {
	for k := range n {
		a[i*n+k], a[j*n+k] = a[j*n+k], a[i*n+k]
	}
}
