package poseidon254

import (
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test"

	gposeidon "github.com/vocdoni/poseidon254/gnark/poseidon254"
)

func mustElement(t *testing.T, s string) fr.Element {
	t.Helper()
	var e fr.Element
	if _, err := e.SetString(s); err != nil {
		t.Fatalf("parse element: %v", err)
	}
	return e
}

func uints(vs ...uint64) []fr.Element {
	out := make([]fr.Element, len(vs))
	for i, v := range vs {
		out[i].SetUint64(v)
	}
	return out
}

func TestKnownAnswerVectors(t *testing.T) {
	in := uints(0, 1, 2, 3, 4)
	expected := []fr.Element{
		mustElement(t, "19233458514834728331474567961060127916812516955603323532500312335518854058660"),
		mustElement(t, "552237925577700976947389142507042313738142785955221424989144818087884010856"),
		mustElement(t, "2276844275478527449400463081939531666654715643980433233269413053463471595874"),
		mustElement(t, "16693744376427753199219304436953894279615451628084968107683645638760129238122"),
		mustElement(t, "17174841297269272134253109394934467472825800792436746957471109980348961382217"),
	}

	out, err := Hash2(in[0], in[0])
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(&expected[0]) {
		t.Fatalf("hash2(0, 0) mismatch\nexpected %s\ngot      %s", expected[0].String(), out.String())
	}

	out, err = Hash2(in[1], in[2])
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(&expected[1]) {
		t.Fatalf("hash2(1, 2) mismatch\nexpected %s\ngot      %s", expected[1].String(), out.String())
	}

	out, err = Hash1(in[1])
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(&expected[2]) {
		t.Fatalf("hash1 mismatch\nexpected %s\ngot      %s", expected[2].String(), out.String())
	}

	out, err = Hash3(in[1], in[2], in[3])
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(&expected[3]) {
		t.Fatalf("hash3 mismatch\nexpected %s\ngot      %s", expected[3].String(), out.String())
	}

	out, err = Hash4(in[1], in[2], in[3], in[4])
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(&expected[4]) {
		t.Fatalf("hash4 mismatch\nexpected %s\ngot      %s", expected[4].String(), out.String())
	}
}

func TestWideHashes(t *testing.T) {
	in := uints(1, 2, 3, 4, 5, 6, 7)
	outs := make([]fr.Element, 0, 3)
	h5, err := Hash5(in[0], in[1], in[2], in[3], in[4])
	if err != nil {
		t.Fatal(err)
	}
	h6, err := Hash6(in[0], in[1], in[2], in[3], in[4], in[5])
	if err != nil {
		t.Fatal(err)
	}
	h7, err := Hash7(in[0], in[1], in[2], in[3], in[4], in[5], in[6])
	if err != nil {
		t.Fatal(err)
	}
	outs = append(outs, h5, h6, h7)
	for i := range outs {
		for j := i + 1; j < len(outs); j++ {
			if outs[i].Equal(&outs[j]) {
				t.Fatalf("hash of different arities collided: %d and %d", i+5, j+5)
			}
		}
	}
}

func TestLayoutsAgree(t *testing.T) {
	for arity := 1; arity <= maxArity; arity++ {
		std, err := NewPermutation(arity, false)
		if err != nil {
			t.Fatal(err)
		}
		cmp, err := NewPermutation(arity, true)
		if err != nil {
			t.Fatal(err)
		}
		a := make([]fr.Element, arity+1)
		for i := range a {
			a[i].SetUint64(uint64(i*i + 1))
		}
		b := append([]fr.Element(nil), a...)
		std.Permute(native, a)
		cmp.Permute(native, b)
		for i := range a {
			if !a[i].Equal(&b[i]) {
				t.Fatalf("arity %d position %d: standard %s, compressed %s", arity, i, a[i].String(), b[i].String())
			}
		}
	}
}

func TestHashWithTag(t *testing.T) {
	in := uints(1, 2)
	var three, other fr.Element
	three.SetUint64(3)
	other.SetUint64(4)

	def, err := Hash(in...)
	if err != nil {
		t.Fatal(err)
	}
	tagged, err := HashWithTag(three, in...)
	if err != nil {
		t.Fatal(err)
	}
	if !def.Equal(&tagged) {
		t.Fatalf("default tag should be 3")
	}
	tagged, err = HashWithTag(other, in...)
	if err != nil {
		t.Fatal(err)
	}
	if def.Equal(&tagged) {
		t.Fatalf("different tags produced the same hash")
	}
}

func TestHashErrors(t *testing.T) {
	if _, err := Hash(); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Hash(make([]fr.Element, 17)...); err == nil {
		t.Fatal("expected error for unsupported arity")
	}
	if _, err := MultiHash(); err == nil {
		t.Fatal("expected error for empty multihash")
	}
	if _, err := MultiHash(make([]fr.Element, MaxMultiHashInputs+1)...); err == nil {
		t.Fatal("expected error for too many inputs")
	}
	if _, err := SpongeHash(uints(1), 0); err == nil {
		t.Fatal("expected error for zero outputs")
	}
}

func TestMultiHashShortInputIsHash(t *testing.T) {
	in := uints(9, 8, 7, 6)
	m, err := MultiHash(in...)
	if err != nil {
		t.Fatal(err)
	}
	h, err := Hash(in...)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(&h) {
		t.Fatalf("multihash of %d inputs should equal hash", len(in))
	}
}

func TestSpongeHashLengths(t *testing.T) {
	a, err := SpongeHash(uints(1), 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := SpongeHash(uints(1, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	if a[0].Equal(&b[0]) {
		t.Fatalf("zero padding collided with explicit zero")
	}
	c, err := SpongeHash(uints(1, 2, 3, 4, 5), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(c) != 3 {
		t.Fatalf("expected 3 outputs, got %d", len(c))
	}
}

// Circuit that hashes two inputs and checks against an expected native result.
type poseidonCircuit struct {
	Inputs   [2]frontend.Variable
	Expected frontend.Variable `gnark:",public"`
}

func (c *poseidonCircuit) Define(api frontend.API) error {
	out, err := gposeidon.Hash(api, c.Inputs[0], c.Inputs[1])
	if err != nil {
		return err
	}
	api.AssertIsEqual(out, c.Expected)
	return nil
}

func TestCircuitMatchesNative(t *testing.T) {
	assert := test.NewAssert(t)

	i1 := mustElement(t, "7553885614632219548127688026174585776320152166623257619763178041781456016062")
	i2 := mustElement(t, "2337838243217876174544784248400816541933405738836087430664765452605435675740")

	native, err := Hash2(i1, i2)
	if err != nil {
		t.Fatal(err)
	}

	witness := poseidonCircuit{
		Inputs:   [2]frontend.Variable{i1, i2},
		Expected: native,
	}

	assert.ProverSucceeded(
		&poseidonCircuit{},
		&witness,
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16),
	)
}

func TestCircuitKnownAnswer(t *testing.T) {
	assert := test.NewAssert(t)
	witness := poseidonCircuit{
		Inputs:   [2]frontend.Variable{0, 0},
		Expected: mustElement(t, "19233458514834728331474567961060127916812516955603323532500312335518854058660"),
	}
	assert.NoError(test.IsSolved(&poseidonCircuit{}, &witness, ecc.BN254.ScalarField()))

	witness.Expected = 0
	assert.Error(test.IsSolved(&poseidonCircuit{}, &witness, ecc.BN254.ScalarField()))
}

// countCircuit hashes len(Inputs) inputs with the chosen layout.
type countCircuit struct {
	Inputs     []frontend.Variable
	compressed bool
}

func (c *countCircuit) Define(api frontend.API) error {
	h, err := gposeidon.NewHasher(len(c.Inputs), c.compressed)
	if err != nil {
		return err
	}
	out := h.Hash(api, c.Inputs)
	api.AssertIsEqual(out, out)
	return nil
}

func TestConstraintCounts(t *testing.T) {
	for _, arity := range []int{1, 2, 4, 7} {
		var r1csCount, scsStd, scsCmp int
		for _, compressed := range []bool{false, true} {
			ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &countCircuit{
				Inputs:     make([]frontend.Variable, arity),
				compressed: compressed,
			})
			if err != nil {
				t.Fatalf("compile arity %d: %v", arity, err)
			}
			r1csCount = ccs.GetNbConstraints()

			pcs, err := frontend.Compile(ecc.BN254.ScalarField(), scs.NewBuilder, &countCircuit{
				Inputs:     make([]frontend.Variable, arity),
				compressed: compressed,
			})
			if err != nil {
				t.Fatalf("compile scs arity %d: %v", arity, err)
			}
			if compressed {
				scsCmp = pcs.GetNbConstraints()
			} else {
				scsStd = pcs.GetNbConstraints()
			}
		}
		t.Logf("arity-%d constraints: r1cs %d, plonk standard %d, plonk compressed %d", arity, r1csCount, scsStd, scsCmp)
		if scsCmp > scsStd {
			t.Fatalf("arity %d: compressed layout costs more plonk constraints (%d > %d)", arity, scsCmp, scsStd)
		}
	}
}

// Multi-hash large input tests ------------------------------------------------

type multiCircuit struct {
	Inputs   []frontend.Variable
	Expected frontend.Variable `gnark:",public"`
}

func (c *multiCircuit) Define(api frontend.API) error {
	out, err := gposeidon.MultiHash(api, c.Inputs...)
	if err != nil {
		return err
	}
	api.AssertIsEqual(out, c.Expected)
	return nil
}

func TestMultiHashLargeMatchesCircuit(t *testing.T) {
	assert := test.NewAssert(t)

	for _, size := range []int{16, 64, 256} {
		t.Run(fmt.Sprint(size), func(t *testing.T) {
			inputs := make([]fr.Element, size)
			for i := range inputs {
				inputs[i].SetUint64(uint64(i + 1))
			}

			native, err := MultiHash(inputs...)
			if err != nil {
				t.Fatalf("native multihash %d: %v", size, err)
			}

			witness := &multiCircuit{
				Inputs:   make([]frontend.Variable, size),
				Expected: native,
			}
			for i := range inputs {
				witness.Inputs[i] = inputs[i]
			}

			ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &multiCircuit{Inputs: make([]frontend.Variable, size)})
			if err != nil {
				t.Fatalf("compile %d: %v", size, err)
			}
			t.Logf("multihash-%d constraints: %d", size, ccs.GetNbConstraints())

			assert.ProverSucceeded(
				&multiCircuit{Inputs: make([]frontend.Variable, size)},
				witness,
				test.WithCurves(ecc.BN254),
				test.WithBackends(backend.GROTH16),
			)
		})
	}
}

type spongeCircuit struct {
	Inputs   [5]frontend.Variable
	Expected [2]frontend.Variable `gnark:",public"`
}

func (c *spongeCircuit) Define(api frontend.API) error {
	out, err := gposeidon.SpongeHash(api, c.Inputs[:], len(c.Expected))
	if err != nil {
		return err
	}
	for i := range out {
		api.AssertIsEqual(out[i], c.Expected[i])
	}
	return nil
}

func TestSpongeCircuitMatchesNative(t *testing.T) {
	assert := test.NewAssert(t)
	inputs := uints(3, 1, 4, 1, 5)
	native, err := SpongeHash(inputs, 2)
	if err != nil {
		t.Fatal(err)
	}
	var witness spongeCircuit
	for i := range inputs {
		witness.Inputs[i] = inputs[i]
	}
	witness.Expected = [2]frontend.Variable{native[0], native[1]}
	assert.NoError(test.IsSolved(&spongeCircuit{}, &witness, ecc.BN254.ScalarField()))
}
