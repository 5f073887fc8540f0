package poseidon

import "github.com/vocdoni/poseidon254/permutation"

// Block is a rate-sized input chunk. Writing it adds its elements to state
// positions 1..len(block); missing trailing elements act as zero padding.
type Block[F, P, C any, S Specification[F, P, C]] struct {
	spec  S
	elems []F
}

// Write adds the block into the rate part of state and returns the number
// of absorbed elements.
func (b Block[F, P, C, S]) Write(c C, state State[F]) int {
	for i, e := range b.elems {
		b.spec.AddAssign(c, &state[i+1], e)
	}
	return len(b.elems)
}

// RateReader reads state position 1.
type RateReader[F any, C any] struct{}

func (RateReader[F, C]) Read(_ C, state State[F]) F { return state[1] }

// Blocks splits inputs into rate-sized blocks for perm. At least one block
// is returned so that an empty input still permutes once.
func Blocks[F, P, C any, S Specification[F, P, C]](perm *Permutation[F, P, C, S], inputs []F) []Block[F, P, C, S] {
	rate := perm.Width() - 1
	var out []Block[F, P, C, S]
	for i := 0; i < len(inputs); i += rate {
		end := min(i+rate, len(inputs))
		out = append(out, Block[F, P, C, S]{spec: perm.spec, elems: inputs[i:end]})
	}
	if len(out) == 0 {
		out = append(out, Block[F, P, C, S]{spec: perm.spec})
	}
	return out
}

// SpongeHash absorbs inputs into a sponge over perm whose capacity element
// is seeded with tag, then squeezes outputs elements from the rate. Use a
// ConstantLength tag to keep different input lengths apart.
func SpongeHash[F, P, C any, S Specification[F, P, C]](perm *Permutation[F, P, C, S], c C, tag P, inputs []F, outputs int) []F {
	state := ZeroState[F, P, C](perm.spec, c)
	state[0] = perm.spec.FromParameter(c, tag)

	sponge := permutation.NewSponge[State[F], C](perm, state)
	permutation.AbsorbAll[State[F], C, int](sponge, c, Blocks[F, P, C](perm, inputs))

	out := make([]F, outputs)
	for i := range out {
		out[i] = permutation.Squeeze[State[F], C, F](sponge, c, RateReader[F, C]{})
	}
	return out
}
