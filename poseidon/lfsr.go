package poseidon

const lfsrSize = 80

// lfsrTaps are the feedback positions relative to the head.
var lfsrTaps = [...]int{0, 13, 23, 38, 51, 62}

// SeedBits is a seed chunk: the low Count bits of Value, written most
// significant bit first.
type SeedBits struct {
	Count int
	Value uint64
}

// GrainLFSR is the 80-bit Grain self-shrinking generator used to derive
// Poseidon round constants. It is sequential mutable state: it cannot be
// rewound and must not be shared between goroutines.
type GrainLFSR struct {
	state [lfsrSize]bool
	head  int
}

// NewGrainLFSR seeds the register from seed and discards the first 160
// updates. Any seed is accepted.
func NewGrainLFSR(seed []SeedBits) *GrainLFSR {
	l := &GrainLFSR{}
	for _, s := range seed {
		for i := s.Count - 1; i >= 0; i-- {
			l.set((s.Value>>uint(i))&1 == 1)
		}
	}
	for range 2 * lfsrSize {
		l.update()
	}
	return l
}

func (l *GrainLFSR) set(b bool) bool {
	l.state[l.head] = b
	l.head = (l.head + 1) % lfsrSize
	return b
}

func (l *GrainLFSR) bit(i int) bool {
	return l.state[(l.head+i)%lfsrSize]
}

func (l *GrainLFSR) update() bool {
	var b bool
	for _, t := range lfsrTaps {
		b = b != l.bit(t)
	}
	return l.set(b)
}

// NextBit returns the next output bit. Update pairs whose first bit is
// false are discarded; otherwise the second bit of the pair is emitted.
func (l *GrainLFSR) NextBit() bool {
	b := l.update()
	for !b {
		l.update()
		b = l.update()
	}
	return l.update()
}

// NextBits returns the next n output bits.
func (l *GrainLFSR) NextBits(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = l.NextBit()
	}
	return out
}

// Clone returns an independent generator at the same position.
func (l *GrainLFSR) Clone() *GrainLFSR {
	c := *l
	return &c
}
