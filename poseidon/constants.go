package poseidon

import (
	"fmt"
	"math"
)

const (
	// SecurityModulusBits is the field size n assumed by the round-number
	// security bounds.
	SecurityModulusBits = 255
	// SecurityLevel is the target security M in bits.
	SecurityLevel = 128
)

// Constants are the construction-time shape of a Poseidon permutation.
type Constants struct {
	Width         int `json:"width"`
	FullRounds    int `json:"fullRounds"`
	PartialRounds int `json:"partialRounds"`
}

// Validate checks that the constants describe a permutation this package
// can evaluate and preprocess.
func (c Constants) Validate() error {
	if c.Width < 2 {
		return fmt.Errorf("poseidon: width must be at least 2, got %d", c.Width)
	}
	if c.FullRounds < 2 || c.FullRounds%2 != 0 {
		return fmt.Errorf("poseidon: full rounds must be even and at least 2, got %d", c.FullRounds)
	}
	if c.PartialRounds < 1 {
		return fmt.Errorf("poseidon: partial rounds must be at least 1, got %d", c.PartialRounds)
	}
	return nil
}

// Arity is the number of hash inputs a permutation of this width accepts.
func (c Constants) Arity() int { return c.Width - 1 }

// HalfFullRounds is the number of full rounds on each side of the partial
// round block.
func (c Constants) HalfFullRounds() int { return c.FullRounds / 2 }

// Rounds is the total number of rounds.
func (c Constants) Rounds() int { return c.FullRounds + c.PartialRounds }

// IsFullRound reports whether round applies the S-box to every position.
func (c Constants) IsFullRound(round int) bool {
	h := c.HalfFullRounds()
	return round < h || round >= h+c.PartialRounds
}

// MDSMatrixSize is the number of entries in the mixing matrix.
func (c Constants) MDSMatrixSize() int { return c.Width * c.Width }

// AdditiveRoundKeysCount is the number of round constants in the standard
// layout.
func (c Constants) AdditiveRoundKeysCount() int { return c.Rounds() * c.Width }

// CompressedRoundKeysCount is the number of round constants after
// CompressRoundConstants.
func (c Constants) CompressedRoundKeysCount() int {
	return c.Width*c.FullRounds + c.PartialRounds
}

// SBoxCount is the number of S-box evaluations per permutation.
func (c Constants) SBoxCount() int {
	return c.Width*c.FullRounds + c.PartialRounds
}

// SecureConstants searches the round numbers that reach SecurityLevel for the
// given arity with the fewest S-boxes, after adding two full rounds and 7.5%
// partial rounds of margin. Ties prefer fewer full rounds.
func SecureConstants(arity int) Constants {
	width := arity + 1
	best := Constants{Width: width}
	minSBoxes := math.MaxInt
	for rf := 2; rf <= 1000; rf += 2 {
		for rp := 4; rp < 200; rp++ {
			if !(Constants{Width: width, FullRounds: rf, PartialRounds: rp}).IsSecure() {
				continue
			}
			c := Constants{
				Width:         width,
				FullRounds:    rf + 2,
				PartialRounds: ceil32(float32(float32(1.075) * float32(rp))),
			}
			n := c.SBoxCount()
			if n < minSBoxes || (n == minSBoxes && c.FullRounds < best.FullRounds) {
				best = c
				minSBoxes = n
			}
		}
	}
	return best
}

// Strengthened returns c with 25% more partial rounds.
func (c Constants) Strengthened() Constants {
	c.PartialRounds = int(math.Ceil(float64(c.PartialRounds) * 1.25))
	return c
}

// IsSecure reports whether the full rounds reach the lower bound of every
// known attack for the configured width and partial rounds.
func (c Constants) IsSecure() bool {
	return c.FullRounds >= fullRoundsLowerBound(
		float32(c.Width), float32(c.PartialRounds), SecurityModulusBits, SecurityLevel)
}

func fullRoundsLowerBound(width, rp, n, m float32) int {
	return max(
		statisticalBound(width, n, m),
		interpolationBound(width, rp, m),
		groebnerFullBound(rp, n),
		groebnerPartialBound(width, rp, n),
	)
}

func statisticalBound(width, n, m float32) int {
	if m <= float32((n-3)*(width+1)) {
		return 6
	}
	return 10
}

func interpolationBound(width, rp, m float32) int {
	x := float32(float32(0.43) * m)
	x = float32(x + float32(math.Log2(float64(width))))
	return ceil32(float32(x - rp))
}

func groebnerFullBound(rp, n float32) int {
	x := float32(float32(0.21) * n)
	return ceil32(float32(x - rp))
}

func groebnerPartialBound(width, rp, n float32) int {
	x := float32(float32(0.14) * n)
	x = float32(x - 1)
	x = float32(x - rp)
	return ceil32(float32(x / float32(width-1)))
}

// ceil32 rounds up, saturating negative values to zero.
func ceil32(x float32) int {
	v := math.Ceil(float64(x))
	if v < 0 {
		return 0
	}
	return int(v)
}
