package poseidon

import (
	"errors"
	"fmt"

	"github.com/vocdoni/poseidon254/field"
	"github.com/vocdoni/poseidon254/poseidon/matrix"
)

// ErrSingularMatrix is returned for a mixing matrix without an inverse.
var ErrSingularMatrix = errors.New("poseidon: mds matrix is not invertible")

// GenerateMDS returns the row-major Cauchy matrix m[x][y] = 1/(x+y) with
// x in [0, width) and y in [width, 2*width).
func GenerateMDS[E any, PE field.Element[E]](width int) []E {
	out := make([]E, width*width)
	var xs, ys E
	for x := range width {
		for y := range width {
			PE(&xs).SetUint64(uint64(x))
			PE(&ys).SetUint64(uint64(y + width))
			e := PE(&out[x*width+y])
			e.Add(&xs, &ys)
			e.Inverse(e)
		}
	}
	return out
}

// MDSMatrices is a mixing matrix together with its inverse.
type MDSMatrices[E any, PE field.Element[E]] struct {
	M        matrix.Matrix[E, PE]
	MInverse matrix.Matrix[E, PE]
}

// NewMDSMatrices wraps a square row-major matrix and precomputes its
// inverse.
func NewMDSMatrices[E any, PE field.Element[E]](rowMajor []E) (MDSMatrices[E, PE], error) {
	n := 0
	for n*n < len(rowMajor) {
		n++
	}
	m, err := matrix.New[E, PE](n, rowMajor)
	if err != nil {
		return MDSMatrices[E, PE]{}, fmt.Errorf("poseidon: mds: %w", err)
	}
	inv, err := m.Inverse()
	if errors.Is(err, matrix.ErrSingular) {
		return MDSMatrices[E, PE]{}, ErrSingularMatrix
	}
	if err != nil {
		return MDSMatrices[E, PE]{}, err
	}
	return MDSMatrices[E, PE]{M: m, MInverse: inv}, nil
}
