// Package poseidon implements the Poseidon permutation and hasher once,
// generically over the execution context that evaluates it.
//
// A Specification supplies the field operations for one backend: F is the
// state element type, P the parameter (constant) element type and C the
// execution context. NativeSpec evaluates directly over a gnark-crypto
// field; the gnark packages provide circuit specifications over
// frontend.API and emulated fields.
package poseidon

import "fmt"

// Specification is the operation set a backend must provide. Every
// operation receives the execution context first.
type Specification[F, P, C any] interface {
	// Constants returns the width and round numbers.
	Constants() Constants
	// Zero returns the additive identity.
	Zero(c C) F
	// Add returns lhs + rhs.
	Add(c C, lhs, rhs F) F
	// AddConst returns lhs + rhs for a parameter rhs.
	AddConst(c C, lhs F, rhs P) F
	// Mul returns lhs * rhs.
	Mul(c C, lhs, rhs F) F
	// MulConst returns lhs * rhs for a parameter rhs.
	MulConst(c C, lhs F, rhs P) F
	// AddAssign sets lhs to lhs + rhs.
	AddAssign(c C, lhs *F, rhs F)
	// AddConstAssign sets lhs to lhs + rhs for a parameter rhs.
	AddConstAssign(c C, lhs *F, rhs P)
	// ApplySBox replaces x with its S-box image.
	ApplySBox(c C, x *F)
	// FromParameter lifts a parameter into a state element.
	FromParameter(c C, p P) F
}

// State is a Poseidon state. Its length always equals the permutation
// width.
type State[F any] []F

// NewState returns a state holding elems. It panics if the number of
// elements is not width.
func NewState[F any](width int, elems ...F) State[F] {
	if len(elems) != width {
		panic(fmt.Sprintf("poseidon: state has %d elements, expected width %d", len(elems), width))
	}
	s := make(State[F], width)
	copy(s, elems)
	return s
}

// ZeroState returns a state of the given width filled with spec.Zero.
func ZeroState[F, P, C any](spec Specification[F, P, C], c C) State[F] {
	s := make(State[F], spec.Constants().Width)
	for i := range s {
		s[i] = spec.Zero(c)
	}
	return s
}
