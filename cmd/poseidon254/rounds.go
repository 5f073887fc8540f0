package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vocdoni/poseidon254/poseidon"
)

var (
	roundsArity        int
	roundsStrengthened bool
)

func init() {
	roundsCmd.Flags().IntVar(&roundsArity, "arity", 2, "Number of hash inputs.")
	roundsCmd.Flags().BoolVar(&roundsStrengthened, "strengthened", false, "Add 25% partial rounds.")
}

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "Print the secure round numbers for an arity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRounds(cmd.OutOrStdout(), roundsArity, roundsStrengthened)
	},
}

func printRounds(w io.Writer, arity int, strengthened bool) error {
	if arity < 1 {
		return fmt.Errorf("arity must be positive, got %d", arity)
	}
	c := poseidon.SecureConstants(arity)
	if strengthened {
		c = c.Strengthened()
	}
	_, err := fmt.Fprintf(w, "width=%d fullRounds=%d partialRounds=%d sboxes=%d secure=%t\n",
		c.Width, c.FullRounds, c.PartialRounds, c.SBoxCount(), c.IsSecure())
	return err
}
