package params

import "fmt"

// Validate checks basic shape and sizes of the parameter set.
func Validate(p *Parameters) error {
	if p.Alpha.Inverse || p.Alpha.Exponent != SBox.Exponent {
		return fmt.Errorf("poseidon254: unsupported s-box exponent %d (inverse %v)", p.Alpha.Exponent, p.Alpha.Inverse)
	}
	c := p.Constants()
	if err := c.Validate(); err != nil {
		return err
	}
	if len(p.Arc) != c.AdditiveRoundKeysCount() {
		return fmt.Errorf("poseidon254: arc length mismatch (%d, expected %d)", len(p.Arc), c.AdditiveRoundKeysCount())
	}
	if len(p.OptimizedArc) != c.CompressedRoundKeysCount() {
		return fmt.Errorf("poseidon254: optimized arc length mismatch (%d, expected %d)", len(p.OptimizedArc), c.CompressedRoundKeysCount())
	}
	if len(p.MDS) != c.MDSMatrixSize() {
		return fmt.Errorf("poseidon254: mds length mismatch")
	}
	if len(p.MDSInverse) != c.MDSMatrixSize() {
		return fmt.Errorf("poseidon254: mds inverse length mismatch")
	}
	if !c.IsSecure() {
		return fmt.Errorf("poseidon254: %d full and %d partial rounds are not secure for width %d", c.FullRounds, c.PartialRounds, c.Width)
	}
	return nil
}
