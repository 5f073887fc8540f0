// Package field describes the prime-field element types the permutation
// framework evaluates natively. Every gnark-crypto scalar field element
// (bn254/fr, bls12-381/fr, bls12-377/fr, ...) satisfies Element.
package field

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Element is the pointer-method set of a gnark-crypto field element E.
type Element[E any] interface {
	*E
	Set(*E) *E
	SetZero() *E
	SetOne() *E
	SetUint64(uint64) *E
	SetBigInt(*big.Int) *E
	SetString(string) (*E, error)
	BigInt(*big.Int) *big.Int
	Add(*E, *E) *E
	Sub(*E, *E) *E
	Mul(*E, *E) *E
	Square(*E) *E
	Neg(*E) *E
	Inverse(*E) *E
	Exp(E, *big.Int) *E
	IsZero() bool
	Equal(*E) bool
	Marshal() []byte
	SetBytesCanonical([]byte) error
	String() string
}

// ErrOutOfRange is returned when a value does not fit the field.
var ErrOutOfRange = errors.New("field: value out of range")

// Modulus returns the field characteristic, recovered as (-1)+1.
func Modulus[E any, PE Element[E]]() *big.Int {
	var minusOne E
	PE(&minusOne).SetOne()
	PE(&minusOne).Neg(&minusOne)
	p := PE(&minusOne).BigInt(new(big.Int))
	return p.Add(p, big.NewInt(1))
}

// ModulusBits is the bit length of the field characteristic.
func ModulusBits[E any, PE Element[E]]() int {
	return Modulus[E, PE]().BitLen()
}

// ByteLen is the size of the canonical big-endian encoding of an element.
func ByteLen[E any, PE Element[E]]() int {
	var zero E
	return len(PE(&zero).Marshal())
}

// FromUint64 returns v as a field element.
func FromUint64[E any, PE Element[E]](v uint64) E {
	var e E
	PE(&e).SetUint64(v)
	return e
}

// FromBigInt reduces v into the field.
func FromBigInt[E any, PE Element[E]](v *big.Int) E {
	var e E
	PE(&e).SetBigInt(v)
	return e
}

// FromString parses a decimal (or 0x-prefixed hex) element. Values outside
// [0, modulus) fail with ErrOutOfRange instead of being reduced.
func FromString[E any, PE Element[E]](s string) (E, error) {
	var e E
	base := 10
	digits := s
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		base, digits = 16, rest
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return e, fmt.Errorf("field: parse %q: invalid number", s)
	}
	if v.Sign() < 0 || v.Cmp(Modulus[E, PE]()) >= 0 {
		return e, fmt.Errorf("field: parse %q: %w", s, ErrOutOfRange)
	}
	PE(&e).SetBigInt(v)
	return e, nil
}

// FromBitsBE interprets bits as a big-endian integer and returns it as a
// field element. It fails with ErrOutOfRange if the integer is not below the
// modulus, leaving the caller to decide whether to resample.
func FromBitsBE[E any, PE Element[E]](bits []bool) (E, error) {
	var e E
	v := new(big.Int)
	for i, b := range bits {
		if b {
			v.SetBit(v, len(bits)-1-i, 1)
		}
	}
	if v.Cmp(Modulus[E, PE]()) >= 0 {
		return e, ErrOutOfRange
	}
	PE(&e).SetBigInt(v)
	return e, nil
}

// Pow2MinusOne returns 2^n - 1 in the field.
func Pow2MinusOne[E any, PE Element[E]](n uint) E {
	v := new(big.Int).Lsh(big.NewInt(1), n)
	return FromBigInt[E, PE](v.Sub(v, big.NewInt(1)))
}
