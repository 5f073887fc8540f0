package permutation

// Writer injects itself into a sponge state without permuting it and returns
// an auxiliary output.
type Writer[D, C, O any] interface {
	Write(c C, state D) O
}

// WriterFunc adapts an ordinary function to Writer.
type WriterFunc[D, C, O any] func(c C, state D) O

// Write calls f(c, state).
func (f WriterFunc[D, C, O]) Write(c C, state D) O {
	return f(c, state)
}

// Reader extracts a value from a sponge state without mutating it.
type Reader[D, C, R any] interface {
	Read(c C, state D) R
}

// ReaderFunc adapts an ordinary function to Reader.
type ReaderFunc[D, C, R any] func(c C, state D) R

// Read calls f(c, state).
func (f ReaderFunc[D, C, R]) Read(c C, state D) R {
	return f(c, state)
}

// Sponge borrows a permutation and a state. It is a short-lived handle and
// is not safe for concurrent use: calls on one Sponge must be sequential and
// the state must not be touched by anyone else while the sponge is in use.
type Sponge[D, C any] struct {
	perm  Permutation[D, C]
	state D
}

// NewSponge returns a sponge over state driven by perm.
func NewSponge[D, C any](perm Permutation[D, C], state D) *Sponge[D, C] {
	return &Sponge[D, C]{perm: perm, state: state}
}

// State returns the underlying state.
func (s *Sponge[D, C]) State() D {
	return s.state
}

// Permute applies the permutation to the state once.
func (s *Sponge[D, C]) Permute(c C) {
	s.perm.Permute(c, s.state)
}

// Write injects item into the sponge state without permuting.
func Write[D, C, O any](s *Sponge[D, C], c C, item Writer[D, C, O]) O {
	return item.Write(c, s.state)
}

// Absorb writes item and then permutes the state.
func Absorb[D, C, O any](s *Sponge[D, C], c C, item Writer[D, C, O]) O {
	out := item.Write(c, s.state)
	s.perm.Permute(c, s.state)
	return out
}

// AbsorbEach absorbs items in order, handing every write output to collect.
func AbsorbEach[D, C, O any, W Writer[D, C, O]](s *Sponge[D, C], c C, items []W, collect func(O)) {
	for _, item := range items {
		out := Absorb[D, C, O](s, c, item)
		if collect != nil {
			collect(out)
		}
	}
}

// AbsorbAll absorbs items in order and returns the write outputs in the
// same order.
func AbsorbAll[D, C, O any, W Writer[D, C, O]](s *Sponge[D, C], c C, items []W) []O {
	outs := make([]O, 0, len(items))
	AbsorbEach[D, C, O](s, c, items, func(o O) {
		outs = append(outs, o)
	})
	return outs
}

// Read extracts a value from the current state.
func Read[D, C, R any](s *Sponge[D, C], c C, r Reader[D, C, R]) R {
	return r.Read(c, s.state)
}

// Squeeze reads a value and then permutes the state, returning the value
// read before the permutation.
func Squeeze[D, C, R any](s *Sponge[D, C], c C, r Reader[D, C, R]) R {
	out := r.Read(c, s.state)
	s.perm.Permute(c, s.state)
	return out
}
