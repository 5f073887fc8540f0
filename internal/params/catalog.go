// Package params generates and caches the BN254 Poseidon parameter sets
// used by the native, circuit and emulated hashers.
package params

import (
	"fmt"
	"sync"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/rs/zerolog"

	"github.com/vocdoni/poseidon254/field"
	"github.com/vocdoni/poseidon254/poseidon"
)

// MaxArity is the largest arity with a cached parameter set.
const MaxArity = 16

var (
	log = zerolog.Nop()

	mu    sync.Mutex
	cache = map[int]*Parameters{}
)

// SetLogger sets the logger used to report parameter generation.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// ForArity returns the parameter set for arity, generating it on first use.
// The returned value is shared and must not be modified.
func ForArity(arity int) (*Parameters, error) {
	if arity < 1 || arity > MaxArity {
		return nil, fmt.Errorf("poseidon254: unsupported arity %d", arity)
	}
	mu.Lock()
	defer mu.Unlock()
	if p, ok := cache[arity]; ok {
		return p, nil
	}
	start := time.Now()
	p, err := Generate(poseidon.SecureConstants(arity))
	if err != nil {
		return nil, err
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	cache[arity] = p
	log.Debug().
		Int("arity", arity).
		Int("width", p.StateSize).
		Int("fullRounds", p.FullRounds).
		Int("partialRounds", p.PartialRounds).
		Dur("took", time.Since(start)).
		Msg("generated poseidon parameters")
	return p, nil
}

// Generate derives round constants, the Cauchy MDS matrix, its inverse and
// the compressed round constants for c over the BN254 scalar field. The
// domain tag is 2^(width-1) - 1.
func Generate(c poseidon.Constants) (*Parameters, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	arc := poseidon.GenerateRoundConstants[fr.Element](c)
	mds, err := poseidon.NewMDSMatrices[fr.Element](poseidon.GenerateMDS[fr.Element](c.Width))
	if err != nil {
		// The Cauchy construction is invertible for every width we accept; a
		// failure means the parameter set itself is broken.
		return nil, fmt.Errorf("poseidon254: width %d: %w", c.Width, err)
	}
	return &Parameters{
		M:             poseidon.SecurityLevel,
		StateSize:     c.Width,
		FullRounds:    c.FullRounds,
		PartialRounds: c.PartialRounds,
		Alpha:         SBox,
		Arc:           arc,
		OptimizedArc:  poseidon.CompressRoundConstants(c, arc, mds),
		MDS:           mds.M.RowMajor(),
		MDSInverse:    mds.MInverse.RowMajor(),
		DomainTag:     poseidon.TwoPowerMinusOne[fr.Element, *fr.Element]{}.DomainTag(c.Width),
	}, nil
}

// FieldModulusBits is the bit length of the BN254 scalar field.
func FieldModulusBits() int { return field.ModulusBits[fr.Element]() }
