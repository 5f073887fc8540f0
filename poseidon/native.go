package poseidon

import (
	"github.com/vocdoni/poseidon254/field"
	"github.com/vocdoni/poseidon254/permutation"
)

// NativeSpec evaluates Poseidon directly over a gnark-crypto field element
// type E with the x^5 S-box. State and parameters share the element type.
type NativeSpec[E any, PE field.Element[E]] struct {
	constants Constants
}

// NewNativeSpec returns a native specification with the given constants.
// It panics if the constants are invalid.
func NewNativeSpec[E any, PE field.Element[E]](c Constants) NativeSpec[E, PE] {
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return NativeSpec[E, PE]{constants: c}
}

func (s NativeSpec[E, PE]) Constants() Constants { return s.constants }

func (NativeSpec[E, PE]) Zero(permutation.Native) E {
	var z E
	return z
}

func (NativeSpec[E, PE]) Add(_ permutation.Native, lhs, rhs E) E {
	var r E
	PE(&r).Add(&lhs, &rhs)
	return r
}

func (NativeSpec[E, PE]) Sub(_ permutation.Native, lhs, rhs E) E {
	var r E
	PE(&r).Sub(&lhs, &rhs)
	return r
}

func (NativeSpec[E, PE]) AddConst(_ permutation.Native, lhs E, rhs E) E {
	var r E
	PE(&r).Add(&lhs, &rhs)
	return r
}

func (NativeSpec[E, PE]) Mul(_ permutation.Native, lhs, rhs E) E {
	var r E
	PE(&r).Mul(&lhs, &rhs)
	return r
}

func (NativeSpec[E, PE]) MulConst(_ permutation.Native, lhs E, rhs E) E {
	var r E
	PE(&r).Mul(&lhs, &rhs)
	return r
}

func (NativeSpec[E, PE]) AddAssign(_ permutation.Native, lhs *E, rhs E) {
	PE(lhs).Add(lhs, &rhs)
}

func (NativeSpec[E, PE]) AddConstAssign(_ permutation.Native, lhs *E, rhs E) {
	PE(lhs).Add(lhs, &rhs)
}

// ApplySBox computes x^5.
func (NativeSpec[E, PE]) ApplySBox(_ permutation.Native, x *E) {
	var x2, x4 E
	PE(&x2).Square(x)
	PE(&x4).Square(&x2)
	PE(x).Mul(x, &x4)
}

func (NativeSpec[E, PE]) FromParameter(_ permutation.Native, p E) E { return p }

// NativePermutation is a Poseidon permutation evaluated natively over E.
type NativePermutation[E any, PE field.Element[E]] = Permutation[E, E, permutation.Native, NativeSpec[E, PE]]

// NativeHasher is a Poseidon hasher evaluated natively over E.
type NativeHasher[E any, PE field.Element[E]] = Hasher[E, E, permutation.Native, NativeSpec[E, PE]]

// NewNativePermutation generates round constants and the Cauchy MDS matrix
// for c and returns the matching native permutation. With compressed set,
// the round constants are preprocessed and the compressed layout is used.
func NewNativePermutation[E any, PE field.Element[E]](c Constants, compressed bool) (*NativePermutation[E, PE], error) {
	spec := NewNativeSpec[E, PE](c)
	keys := GenerateRoundConstants[E, PE](c)
	mds, err := NewMDSMatrices[E, PE](GenerateMDS[E, PE](c.Width))
	if err != nil {
		return nil, err
	}
	if compressed {
		return NewCompressedPermutation[E, E, permutation.Native](spec, CompressRoundConstants(c, keys, mds), mds.M.RowMajor()), nil
	}
	return NewPermutation[E, E, permutation.Native](spec, keys, mds.M.RowMajor()), nil
}
