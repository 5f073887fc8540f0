package poseidon

import "fmt"

// Layout selects how round constants are laid out and applied.
type Layout uint8

const (
	// StandardLayout adds Width constants before the S-box layer of every
	// round.
	StandardLayout Layout = iota
	// CompressedLayout uses constants produced by CompressRoundConstants:
	// Width constants before the first round, then after the S-box layer
	// Width constants per full round (none in the last one) and a single
	// constant per partial round.
	CompressedLayout
)

func (l Layout) String() string {
	switch l {
	case StandardLayout:
		return "standard"
	case CompressedLayout:
		return "compressed"
	default:
		return fmt.Sprintf("layout(%d)", uint8(l))
	}
}

// Permutation is an immutable Poseidon permutation. It is safe for
// concurrent use; each evaluation owns its own State.
type Permutation[F, P, C any, S Specification[F, P, C]] struct {
	spec   S
	layout Layout
	keys   []P
	mds    []P
}

// NewPermutation builds a permutation in the standard layout from
// Width*(FullRounds+PartialRounds) round keys and a row-major Width*Width
// MDS matrix. It panics on a size mismatch.
func NewPermutation[F, P, C any, S Specification[F, P, C]](spec S, keys, mds []P) *Permutation[F, P, C, S] {
	return newPermutationChecked[F, P, C](spec, StandardLayout, keys, mds)
}

// NewCompressedPermutation builds a permutation from round keys produced by
// CompressRoundConstants. It panics on a size mismatch.
func NewCompressedPermutation[F, P, C any, S Specification[F, P, C]](spec S, keys, mds []P) *Permutation[F, P, C, S] {
	return newPermutationChecked[F, P, C](spec, CompressedLayout, keys, mds)
}

func newPermutationChecked[F, P, C any, S Specification[F, P, C]](spec S, layout Layout, keys, mds []P) *Permutation[F, P, C, S] {
	if err := checkSizes(spec.Constants(), layout, len(keys), len(mds)); err != nil {
		panic(err)
	}
	return newPermutationUnchecked[F, P, C](spec, layout, keys, mds)
}

// newPermutationUnchecked skips size checks for data already known to be
// well formed.
func newPermutationUnchecked[F, P, C any, S Specification[F, P, C]](spec S, layout Layout, keys, mds []P) *Permutation[F, P, C, S] {
	p := &Permutation[F, P, C, S]{
		spec:   spec,
		layout: layout,
		keys:   make([]P, len(keys)),
		mds:    make([]P, len(mds)),
	}
	copy(p.keys, keys)
	copy(p.mds, mds)
	return p
}

func checkSizes(c Constants, layout Layout, keys, mds int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	want := c.AdditiveRoundKeysCount()
	switch layout {
	case StandardLayout:
	case CompressedLayout:
		want = c.CompressedRoundKeysCount()
	default:
		return fmt.Errorf("poseidon: unknown %s", layout)
	}
	if keys != want {
		return fmt.Errorf("poseidon: %s layout needs %d round keys, got %d", layout, want, keys)
	}
	if mds != c.MDSMatrixSize() {
		return fmt.Errorf("poseidon: mds matrix needs %d entries, got %d", c.MDSMatrixSize(), mds)
	}
	return nil
}

// Specification returns the backend the permutation evaluates with.
func (p *Permutation[F, P, C, S]) Specification() S { return p.spec }

// Constants returns the width and round numbers.
func (p *Permutation[F, P, C, S]) Constants() Constants { return p.spec.Constants() }

// Width returns the state width.
func (p *Permutation[F, P, C, S]) Width() int { return p.spec.Constants().Width }

// Layout returns the round key layout.
func (p *Permutation[F, P, C, S]) Layout() Layout { return p.layout }

// AdditiveRoundKeys returns a copy of the round keys.
func (p *Permutation[F, P, C, S]) AdditiveRoundKeys() []P {
	out := make([]P, len(p.keys))
	copy(out, p.keys)
	return out
}

// MDSMatrix returns a copy of the row-major MDS matrix.
func (p *Permutation[F, P, C, S]) MDSMatrix() []P {
	out := make([]P, len(p.mds))
	copy(out, p.mds)
	return out
}

// RoundKeys returns the keys added to the state before and after the S-box
// layer of round. Standard rounds only add before; compressed rounds add
// before in round 0 and after in every round but the last. A single key
// after the S-box (partial rounds) applies to position 0.
func (p *Permutation[F, P, C, S]) RoundKeys(round int) (pre, post []P) {
	c := p.spec.Constants()
	t := c.Width
	if p.layout == StandardLayout {
		return p.keys[round*t : (round+1)*t], nil
	}
	if round == 0 {
		pre = p.keys[:t]
	}
	h := c.HalfFullRounds()
	switch {
	case round < h:
		off := t + round*t
		post = p.keys[off : off+t]
	case round < h+c.PartialRounds:
		off := t + h*t + (round - h)
		post = p.keys[off : off+1]
	case round < c.Rounds()-1:
		off := t + h*t + c.PartialRounds + (round-h-c.PartialRounds)*t
		post = p.keys[off : off+t]
	}
	return pre, post
}

func (p *Permutation[F, P, C, S]) addKeys(c C, state State[F], keys []P) {
	for i := range keys {
		p.spec.AddConstAssign(c, &state[i], keys[i])
	}
}

// MDSMultiply replaces state with mds * state. It panics if the state
// length differs from the width.
func (p *Permutation[F, P, C, S]) MDSMultiply(c C, state State[F]) {
	p.checkState(state)
	t := len(state)
	next := make([]F, t)
	for i := range t {
		acc := p.spec.Zero(c)
		for j := range t {
			p.spec.AddAssign(c, &acc, p.spec.MulConst(c, state[j], p.mds[i*t+j]))
		}
		next[i] = acc
	}
	copy(state, next)
}

// FullRound applies round with the S-box on every position.
func (p *Permutation[F, P, C, S]) FullRound(c C, state State[F], round int) {
	p.checkState(state)
	pre, post := p.RoundKeys(round)
	p.addKeys(c, state, pre)
	for i := range state {
		p.spec.ApplySBox(c, &state[i])
	}
	p.addKeys(c, state, post)
	p.MDSMultiply(c, state)
}

// PartialRound applies round with the S-box on position 0 only.
func (p *Permutation[F, P, C, S]) PartialRound(c C, state State[F], round int) {
	p.checkState(state)
	pre, post := p.RoundKeys(round)
	p.addKeys(c, state, pre)
	p.spec.ApplySBox(c, &state[0])
	p.addKeys(c, state, post)
	p.MDSMultiply(c, state)
}

func (p *Permutation[F, P, C, S]) round(c C, state State[F], round int) {
	if p.spec.Constants().IsFullRound(round) {
		p.FullRound(c, state, round)
		return
	}
	p.PartialRound(c, state, round)
}

// Permute applies every round to state in place. It panics if the state
// length differs from the width.
func (p *Permutation[F, P, C, S]) Permute(c C, state State[F]) {
	p.checkState(state)
	for r := range p.spec.Constants().Rounds() {
		p.round(c, state, r)
	}
}

// permuteWithoutFirstRound applies rounds 1.. to a state that already went
// through round 0.
func (p *Permutation[F, P, C, S]) permuteWithoutFirstRound(c C, state State[F]) {
	for r := 1; r < p.spec.Constants().Rounds(); r++ {
		p.round(c, state, r)
	}
}

// firstRoundWithDomainTag builds the state [tag, inputs...] and applies
// round 0. The tag and its round key are both constants, so they are
// folded before entering the state.
func (p *Permutation[F, P, C, S]) firstRoundWithDomainTag(c C, tag P, inputs []F) State[F] {
	t := p.Width()
	if len(inputs) != t-1 {
		panic(fmt.Sprintf("poseidon: expected %d inputs, got %d", t-1, len(inputs)))
	}
	pre, post := p.RoundKeys(0)
	state := make(State[F], t)
	state[0] = p.spec.AddConst(c, p.spec.FromParameter(c, tag), pre[0])
	for i, in := range inputs {
		state[i+1] = p.spec.AddConst(c, in, pre[i+1])
	}
	for i := range state {
		p.spec.ApplySBox(c, &state[i])
	}
	p.addKeys(c, state, post)
	p.MDSMultiply(c, state)
	return state
}

func (p *Permutation[F, P, C, S]) checkState(state State[F]) {
	if len(state) != p.Width() {
		panic(fmt.Sprintf("poseidon: state has %d elements, expected width %d", len(state), p.Width()))
	}
}
