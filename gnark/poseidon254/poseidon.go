package poseidon254

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"

	"github.com/vocdoni/poseidon254/field"
	"github.com/vocdoni/poseidon254/internal/params"
	"github.com/vocdoni/poseidon254/poseidon"
)

// Spec emits gnark constraints for the Poseidon permutation over the native
// field of the circuit. Round constants stay native elements of E and enter
// the circuit as constants.
type Spec[E any, PE field.Element[E]] struct {
	constants poseidon.Constants
}

// NewSpec returns a circuit specification with the given constants. It
// panics if the constants are invalid.
func NewSpec[E any, PE field.Element[E]](c poseidon.Constants) Spec[E, PE] {
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return Spec[E, PE]{constants: c}
}

func (s Spec[E, PE]) Constants() poseidon.Constants { return s.constants }

func (Spec[E, PE]) Zero(frontend.API) frontend.Variable { return 0 }

func (Spec[E, PE]) Add(api frontend.API, lhs, rhs frontend.Variable) frontend.Variable {
	return api.Add(lhs, rhs)
}

func (Spec[E, PE]) Sub(api frontend.API, lhs, rhs frontend.Variable) frontend.Variable {
	return api.Sub(lhs, rhs)
}

func (Spec[E, PE]) AddConst(api frontend.API, lhs frontend.Variable, rhs E) frontend.Variable {
	return api.Add(lhs, constant[E, PE](rhs))
}

func (Spec[E, PE]) Mul(api frontend.API, lhs, rhs frontend.Variable) frontend.Variable {
	return api.Mul(lhs, rhs)
}

func (Spec[E, PE]) MulConst(api frontend.API, lhs frontend.Variable, rhs E) frontend.Variable {
	return api.Mul(lhs, constant[E, PE](rhs))
}

func (Spec[E, PE]) AddAssign(api frontend.API, lhs *frontend.Variable, rhs frontend.Variable) {
	*lhs = api.Add(*lhs, rhs)
}

func (Spec[E, PE]) AddConstAssign(api frontend.API, lhs *frontend.Variable, rhs E) {
	*lhs = api.Add(*lhs, constant[E, PE](rhs))
}

// ApplySBox computes x^5 with three multiplications.
func (Spec[E, PE]) ApplySBox(api frontend.API, x *frontend.Variable) {
	x2 := api.Mul(*x, *x)
	x4 := api.Mul(x2, x2)
	*x = api.Mul(x4, *x)
}

func (Spec[E, PE]) FromParameter(_ frontend.API, p E) frontend.Variable {
	return constant[E, PE](p)
}

func constant[E any, PE field.Element[E]](e E) *big.Int {
	return PE(&e).BigInt(new(big.Int))
}

type (
	// Permutation is the BN254 Poseidon permutation as a gnark gadget.
	Permutation = poseidon.Permutation[frontend.Variable, fr.Element, frontend.API, Spec[fr.Element, *fr.Element]]
	// Hasher is a BN254 Poseidon hasher as a gnark gadget.
	Hasher = poseidon.Hasher[frontend.Variable, fr.Element, frontend.API, Spec[fr.Element, *fr.Element]]
)

// NewPermutation builds the gadget for arity from the same parameter set as
// the native hasher. The compressed layout needs fewer additions, which
// saves PLONK constraints; R1CS counts are the same.
func NewPermutation(arity int, compressed bool) (*Permutation, error) {
	p, err := params.ForArity(arity)
	if err != nil {
		return nil, err
	}
	spec := NewSpec[fr.Element](p.Constants())
	if compressed {
		return poseidon.NewCompressedPermutation[frontend.Variable, fr.Element, frontend.API](spec, p.OptimizedArc, p.MDS), nil
	}
	return poseidon.NewPermutation[frontend.Variable, fr.Element, frontend.API](spec, p.Arc, p.MDS), nil
}

// NewHasher returns the gadget for arity tagged with 2^arity - 1.
func NewHasher(arity int, compressed bool) (*Hasher, error) {
	perm, err := NewPermutation(arity, compressed)
	if err != nil {
		return nil, err
	}
	return poseidon.HasherFromPermutation[frontend.Variable, fr.Element, frontend.API](perm, poseidon.TwoPowerMinusOne[fr.Element, *fr.Element]{}), nil
}

// Hash computes the Poseidon hash of inputs inside a gnark circuit.
func Hash(api frontend.API, inputs ...frontend.Variable) (frontend.Variable, error) {
	if len(inputs) < 1 {
		var zero frontend.Variable
		return zero, fmt.Errorf("poseidon254: need at least 1 input")
	}
	h, err := NewHasher(len(inputs), true)
	if err != nil {
		var zero frontend.Variable
		return zero, err
	}
	return h.Hash(api, inputs), nil
}

// HashWithTag is Hash with an explicit constant domain tag.
func HashWithTag(api frontend.API, tag fr.Element, inputs ...frontend.Variable) (frontend.Variable, error) {
	if len(inputs) < 1 {
		var zero frontend.Variable
		return zero, fmt.Errorf("poseidon254: need at least 1 input")
	}
	perm, err := NewPermutation(len(inputs), true)
	if err != nil {
		var zero frontend.Variable
		return zero, err
	}
	h := poseidon.NewHasher[frontend.Variable, fr.Element, frontend.API](perm, len(inputs), tag)
	return h.Hash(api, inputs), nil
}
