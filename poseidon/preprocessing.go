package poseidon

import (
	"fmt"

	"github.com/vocdoni/poseidon254/field"
)

// CompressRoundConstants folds standard-layout round keys through the
// inverse MDS matrix so that partial rounds add a single constant. The
// result has Width*FullRounds + PartialRounds entries and evaluates, under
// CompressedLayout, to the same permutation as keys under StandardLayout.
// It panics if the input sizes do not match c.
func CompressRoundConstants[E any, PE field.Element[E]](c Constants, keys []E, mds MDSMatrices[E, PE]) []E {
	if err := c.Validate(); err != nil {
		panic(err)
	}
	if len(keys) != c.AdditiveRoundKeysCount() {
		panic(fmt.Sprintf("poseidon: expected %d round keys, got %d", c.AdditiveRoundKeysCount(), len(keys)))
	}
	if mds.MInverse.Size() != c.Width {
		panic(fmt.Sprintf("poseidon: mds inverse has size %d, expected %d", mds.MInverse.Size(), c.Width))
	}
	t := c.Width
	h := c.HalfFullRounds()
	roundKeys := func(r int) []E { return keys[r*t : (r+1)*t] }

	out := make([]E, 0, c.CompressedRoundKeysCount())
	out = append(out, roundKeys(0)...)
	for r := 1; r < h; r++ {
		out = append(out, mds.MInverse.MulVec(roundKeys(r))...)
	}

	// Walk the partial rounds backwards. Each step moves the next round's
	// keys in front of the MDS layer; only position 0 has to stay behind the
	// S-box, the rest merges into the current round's keys.
	last := h + c.PartialRounds
	acc := append([]E(nil), roundKeys(last)...)
	partial := make([]E, 0, c.PartialRounds)
	for r := last - 1; r >= h; r-- {
		inv := mds.MInverse.MulVec(acc)
		partial = append(partial, inv[0])
		PE(&inv[0]).SetZero()
		prev := roundKeys(r)
		for i := range acc {
			PE(&acc[i]).Add(&prev[i], &inv[i])
		}
	}
	out = append(out, mds.MInverse.MulVec(acc)...)
	for i := len(partial) - 1; i >= 0; i-- {
		out = append(out, partial[i])
	}

	for r := last + 1; r < c.Rounds(); r++ {
		out = append(out, mds.MInverse.MulVec(roundKeys(r))...)
	}
	return out
}
