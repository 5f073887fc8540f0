// Package permutation defines keyless and keyed permutations over a state
// that is evaluated under an execution context, and the sponge construction
// built on top of them.
//
// The execution context C is threaded through every call and never
// inspected: Native evaluates immediately, while a circuit builder such as
// gnark's frontend.API records constraints as a side effect.
package permutation

// Native is the execution context for direct evaluation. It carries no state.
type Native struct{}

// Permutation permutes a state in place under the context c. D is expected
// to be a reference type (slice or pointer) exclusively owned by the caller
// for the duration of the call.
type Permutation[D, C any] interface {
	Permute(c C, state D)
}

// PermutationFunc adapts an ordinary function to Permutation.
type PermutationFunc[D, C any] func(c C, state D)

// Permute calls f(c, state).
func (f PermutationFunc[D, C]) Permute(c C, state D) {
	f(c, state)
}

// Family derives a concrete permutation from a key, modelling keyed
// pseudorandom permutations built from the same evaluation core.
type Family[K, D, C any] interface {
	Permutation(c C, key K) Permutation[D, C]
}

// FamilyFunc adapts an ordinary function to Family.
type FamilyFunc[K, D, C any] func(c C, key K) Permutation[D, C]

// Permutation calls f(c, key).
func (f FamilyFunc[K, D, C]) Permutation(c C, key K) Permutation[D, C] {
	return f(c, key)
}

// PermuteWithKey derives the permutation for key and applies it to state.
func PermuteWithKey[K, D, C any](f Family[K, D, C], c C, key K, state D) {
	f.Permutation(c, key).Permute(c, state)
}
