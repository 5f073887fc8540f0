package poseidon

import "fmt"

// ArrayHashFunction is the fixed-arity hashing contract consumed by
// accumulator layers: Arity inputs in, one element out.
type ArrayHashFunction[F, C any] interface {
	Arity() int
	Hash(c C, inputs []F) F
}

// Hasher hashes Arity inputs with a Poseidon permutation of width Arity+1,
// seeding position 0 with a domain tag. Its fields are fixed at
// construction.
type Hasher[F, P, C any, S Specification[F, P, C]] struct {
	perm  *Permutation[F, P, C, S]
	arity int
	tag   P
}

// NewHasher returns a hasher over perm. It panics unless arity+1 equals the
// permutation width.
func NewHasher[F, P, C any, S Specification[F, P, C]](perm *Permutation[F, P, C, S], arity int, tag P) *Hasher[F, P, C, S] {
	if arity+1 != perm.Width() {
		panic(fmt.Sprintf("poseidon: arity %d does not match permutation width %d", arity, perm.Width()))
	}
	return newHasherUnchecked[F, P, C](perm, arity, tag)
}

// HasherFromPermutation returns a hasher of arity Width-1 whose tag is
// derived from strategy.
func HasherFromPermutation[F, P, C any, S Specification[F, P, C]](perm *Permutation[F, P, C, S], strategy DomainTag[P]) *Hasher[F, P, C, S] {
	arity := perm.Width() - 1
	return NewHasher[F, P, C](perm, arity, strategy.DomainTag(perm.Width()))
}

func newHasherUnchecked[F, P, C any, S Specification[F, P, C]](perm *Permutation[F, P, C, S], arity int, tag P) *Hasher[F, P, C, S] {
	return &Hasher[F, P, C, S]{perm: perm, arity: arity, tag: tag}
}

// Arity returns the number of inputs Hash expects.
func (h *Hasher[F, P, C, S]) Arity() int { return h.arity }

// DomainTag returns the tag placed at position 0.
func (h *Hasher[F, P, C, S]) DomainTag() P { return h.tag }

// Permutation returns the underlying permutation.
func (h *Hasher[F, P, C, S]) Permutation() *Permutation[F, P, C, S] { return h.perm }

// HashUntruncated returns the full permuted state of [tag, inputs...]. It
// panics if len(inputs) differs from the arity.
func (h *Hasher[F, P, C, S]) HashUntruncated(c C, inputs []F) State[F] {
	if len(inputs) != h.arity {
		panic(fmt.Sprintf("poseidon: expected %d inputs, got %d", h.arity, len(inputs)))
	}
	state := h.perm.firstRoundWithDomainTag(c, h.tag, inputs)
	h.perm.permuteWithoutFirstRound(c, state)
	return state
}

// Hash returns the first element of HashUntruncated.
func (h *Hasher[F, P, C, S]) Hash(c C, inputs []F) F {
	return h.HashUntruncated(c, inputs)[0]
}

// Unary adapts an arity-1 hasher to a single-argument function.
type Unary[F, C any] struct {
	h ArrayHashFunction[F, C]
}

// AsUnary wraps h, which must have arity 1.
func AsUnary[F, C any](h ArrayHashFunction[F, C]) Unary[F, C] {
	if h.Arity() != 1 {
		panic(fmt.Sprintf("poseidon: unary hash needs arity 1, got %d", h.Arity()))
	}
	return Unary[F, C]{h: h}
}

// Hash returns h(x).
func (u Unary[F, C]) Hash(c C, x F) F {
	return u.h.Hash(c, []F{x})
}
