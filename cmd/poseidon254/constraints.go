package main

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/spf13/cobra"

	gposeidon "github.com/vocdoni/poseidon254/gnark/poseidon254"
)

var (
	constraintsArity      int
	constraintsBackend    string
	constraintsCompressed bool
)

func init() {
	constraintsCmd.Flags().IntVar(&constraintsArity, "arity", 2, "Number of hash inputs.")
	constraintsCmd.Flags().StringVar(&constraintsBackend, "backend", "r1cs", "Constraint system (r1cs, scs).")
	constraintsCmd.Flags().BoolVar(&constraintsCompressed, "compressed", true, "Use the preprocessed round constants.")
}

var constraintsCmd = &cobra.Command{
	Use:   "constraints",
	Short: "Count the constraints of one hash over BN254",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := countConstraints(constraintsArity, constraintsBackend, constraintsCompressed)
		if err != nil {
			return err
		}
		return printCount(cmd.OutOrStdout(), constraintsArity, constraintsBackend, constraintsCompressed, n)
	},
}

type hashCircuit struct {
	Inputs     []frontend.Variable
	Output     frontend.Variable `gnark:",public"`
	compressed bool
}

func (c *hashCircuit) Define(api frontend.API) error {
	h, err := gposeidon.NewHasher(len(c.Inputs), c.compressed)
	if err != nil {
		return err
	}
	api.AssertIsEqual(h.Hash(api, c.Inputs), c.Output)
	return nil
}

func countConstraints(arity int, backend string, compressed bool) (int, error) {
	var builder frontend.NewBuilder
	switch backend {
	case "r1cs":
		builder = r1cs.NewBuilder
	case "scs":
		builder = scs.NewBuilder
	default:
		return 0, fmt.Errorf("unknown backend %q", backend)
	}
	if arity < 1 {
		return 0, fmt.Errorf("arity must be positive, got %d", arity)
	}
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), builder, &hashCircuit{
		Inputs:     make([]frontend.Variable, arity),
		compressed: compressed,
	})
	if err != nil {
		return 0, fmt.Errorf("compile arity %d: %w", arity, err)
	}
	logger.Debug().Int("arity", arity).Str("backend", backend).
		Int("variables", ccs.GetNbInternalVariables()).Msg("compiled hash circuit")
	return ccs.GetNbConstraints(), nil
}

func printCount(w io.Writer, arity int, backend string, compressed bool, n int) error {
	_, err := fmt.Fprintf(w, "arity=%d backend=%s compressed=%t constraints=%d\n", arity, backend, compressed, n)
	return err
}
