package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	"github.com/vocdoni/poseidon254"
	"github.com/vocdoni/poseidon254/internal/params"
	"github.com/vocdoni/poseidon254/poseidon"
)

var (
	paramsArity      int
	paramsCompressed bool
	paramsFormat     string
)

func init() {
	paramsCmd.Flags().IntVar(&paramsArity, "arity", 2, "Number of hash inputs.")
	paramsCmd.Flags().BoolVar(&paramsCompressed, "compressed", false, "Export the preprocessed round constants.")
	paramsCmd.Flags().StringVar(&paramsFormat, "format", "json", "Output format (json, cbor, hex).")
}

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Export the parameter set of one arity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportParams(cmd.OutOrStdout(), paramsArity, paramsCompressed, paramsFormat)
	},
}

// exportedParams is the parameter set with every element written in
// decimal. CBOR reuses the json keys.
type exportedParams struct {
	Arity         int        `json:"arity"`
	Width         int        `json:"width"`
	FullRounds    int        `json:"fullRounds"`
	PartialRounds int        `json:"partialRounds"`
	Alpha         uint32     `json:"alpha"`
	Layout        string     `json:"layout"`
	DomainTag     string     `json:"domainTag"`
	RoundKeys     []string   `json:"roundKeys"`
	MDS           [][]string `json:"mds"`
	MDSInverse    [][]string `json:"mdsInverse"`
}

func newExportedParams(p *params.Parameters, compressed bool) exportedParams {
	layout := poseidon.StandardLayout
	if compressed {
		layout = poseidon.CompressedLayout
	}
	return exportedParams{
		Arity:         p.Arity(),
		Width:         p.StateSize,
		FullRounds:    p.FullRounds,
		PartialRounds: p.PartialRounds,
		Alpha:         p.Alpha.Exponent,
		Layout:        layout.String(),
		DomainTag:     p.DomainTag.String(),
		RoundKeys:     decimals(p.RoundKeys(compressed)),
		MDS:           rows(p.MDS, p.StateSize),
		MDSInverse:    rows(p.MDSInverse, p.StateSize),
	}
}

func decimals(es []fr.Element) []string {
	out := make([]string, len(es))
	for i := range es {
		out[i] = es[i].String()
	}
	return out
}

func rows(es []fr.Element, n int) [][]string {
	out := make([][]string, 0, n)
	for i := 0; i < len(es); i += n {
		out = append(out, decimals(es[i:i+n]))
	}
	return out
}

func exportParams(w io.Writer, arity int, compressed bool, format string) error {
	p, err := params.ForArity(arity)
	if err != nil {
		return err
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newExportedParams(p, compressed))
	case "cbor":
		em, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return err
		}
		return em.NewEncoder(w).Encode(newExportedParams(p, compressed))
	case "hex":
		perm, err := poseidon254.NewPermutation(arity, compressed)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := perm.Encode(&buf, poseidon.NativeCodec[fr.Element, *fr.Element]{}); err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, hex.EncodeToString(buf.Bytes()))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
