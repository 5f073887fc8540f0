package poseidon

import (
	"math/big"

	"github.com/vocdoni/poseidon254/field"
)

// DomainTag derives the tag a hasher places at position 0 for a permutation
// of the given width.
type DomainTag[P any] interface {
	DomainTag(width int) P
}

// DomainTagFunc adapts an ordinary function to DomainTag.
type DomainTagFunc[P any] func(width int) P

// DomainTag calls f(width).
func (f DomainTagFunc[P]) DomainTag(width int) P { return f(width) }

// TwoPowerMinusOne tags with 2^(width-1) - 1: every bit below the top one
// is set. This is the tag for fixed-arity compression.
type TwoPowerMinusOne[E any, PE field.Element[E]] struct{}

func (TwoPowerMinusOne[E, PE]) DomainTag(width int) E {
	return field.Pow2MinusOne[E, PE](uint(width - 1))
}

// ZeroTag tags with zero.
type ZeroTag[E any, PE field.Element[E]] struct{}

func (ZeroTag[E, PE]) DomainTag(int) E {
	var z E
	return z
}

// ConstantLength tags a sponge that absorbs Length inputs and squeezes
// Outputs elements with Length*2^64 + (Outputs-1).
type ConstantLength[E any, PE field.Element[E]] struct {
	Length  uint64
	Outputs uint64
}

func (t ConstantLength[E, PE]) DomainTag(int) E {
	v := new(big.Int).SetUint64(t.Length)
	v.Lsh(v, 64)
	if t.Outputs > 0 {
		v.Add(v, new(big.Int).SetUint64(t.Outputs-1))
	}
	return field.FromBigInt[E, PE](v)
}

// FixedTag always returns Value.
type FixedTag[E any] struct {
	Value E
}

func (t FixedTag[E]) DomainTag(int) E { return t.Value }

// EncryptionTag seeds a duplex encryption of Blocks message blocks with
// 2^128 + Blocks, which no ConstantLength tag reaches.
type EncryptionTag[E any, PE field.Element[E]] struct {
	Blocks uint64
}

func (t EncryptionTag[E, PE]) DomainTag(int) E {
	v := new(big.Int).Lsh(big.NewInt(1), 128)
	v.Add(v, new(big.Int).SetUint64(t.Blocks))
	return field.FromBigInt[E, PE](v)
}
