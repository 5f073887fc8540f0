package poseidon254

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/math/emulated/emparams"

	"github.com/vocdoni/poseidon254/poseidon"
)

// FrParams defines the emulated parameters for the BN254 scalar field.
type FrParams = emparams.BN254Fr

// Element is an emulated BN254 scalar field element.
type Element = emulated.Element[FrParams]

func constElement(f *emulated.Field[FrParams], fe fr.Element) *Element {
	return f.NewElement(fe.BigInt(new(big.Int)))
}

// Spec evaluates Poseidon over emulated BN254 elements. The execution
// context is the emulated field itself.
type Spec struct {
	constants poseidon.Constants
}

// NewSpec returns an emulated specification with the given constants. It
// panics if the constants are invalid.
func NewSpec(c poseidon.Constants) Spec {
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return Spec{constants: c}
}

func (s Spec) Constants() poseidon.Constants { return s.constants }

func (Spec) Zero(f *emulated.Field[FrParams]) *Element { return f.Zero() }

func (Spec) Add(f *emulated.Field[FrParams], lhs, rhs *Element) *Element {
	return f.Add(lhs, rhs)
}

func (Spec) AddConst(f *emulated.Field[FrParams], lhs *Element, rhs fr.Element) *Element {
	return f.Add(lhs, constElement(f, rhs))
}

func (Spec) Mul(f *emulated.Field[FrParams], lhs, rhs *Element) *Element {
	return f.Mul(lhs, rhs)
}

func (Spec) MulConst(f *emulated.Field[FrParams], lhs *Element, rhs fr.Element) *Element {
	return f.Mul(lhs, constElement(f, rhs))
}

func (Spec) AddAssign(f *emulated.Field[FrParams], lhs **Element, rhs *Element) {
	*lhs = f.Add(*lhs, rhs)
}

func (Spec) AddConstAssign(f *emulated.Field[FrParams], lhs **Element, rhs fr.Element) {
	*lhs = f.Add(*lhs, constElement(f, rhs))
}

// ApplySBox computes x^5.
func (Spec) ApplySBox(f *emulated.Field[FrParams], x **Element) {
	x2 := f.Mul(*x, *x)
	x4 := f.Mul(x2, x2)
	*x = f.Mul(x4, *x)
}

func (Spec) FromParameter(f *emulated.Field[FrParams], p fr.Element) *Element {
	return constElement(f, p)
}
