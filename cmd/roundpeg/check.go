package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jward/roundpeg"
	"github.com/jward/roundpeg/internal/store"
)

var (
	flagHole float64
	flagPegs []float64
)

var checkCmd = &cobra.Command{
	Use:   "check --hole <width> [--peg <width>]... [--] <radius>...",
	Short: "Test circles (and square pegs) against a square hole",
	Long: `Wraps each circle in an adapter and tests it against a hole of width --hole.
Square pegs given with --peg are tested directly. Results are recorded in the
fit log.

Radii that start with "-" must follow "--", otherwise they are read as flags:

  roundpeg check --hole 8 -- -1`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Float64Var(&flagHole, "hole", 0, "hole width (required, must be positive)")
	checkCmd.Flags().Float64SliceVar(&flagPegs, "peg", nil, "square peg width (repeatable)")
	_ = checkCmd.MarkFlagRequired("hole")
}

// parseNumberArg returns a float64 for numeric arguments and the raw string
// otherwise, so that roundpeg reports non-numeric input itself.
func parseNumberArg(s string) any {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return f
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(flagPegs) == 0 {
		return outputError("check", fmt.Errorf("nothing to check: give at least one radius or --peg"))
	}

	hole, err := roundpeg.NewSquareHole(flagHole)
	if err != nil {
		return outputError("check", err)
	}

	formula := selectedFormula()
	batch := store.NewBatchedStore()
	now := time.Now().UTC()
	var fits []CLIFit

	for _, arg := range args {
		fit, err := fitCircle(hole, parseNumberArg(arg), formula)
		if err != nil {
			return outputError("check", fmt.Errorf("radius %q: %w", arg, err))
		}
		fit.Name = arg
		fits = append(fits, fit)
		bufferFit(batch, "check", fit, now)
	}

	for _, w := range flagPegs {
		peg, err := roundpeg.NewSquarePeg(w)
		if err != nil {
			return outputError("check", err)
		}
		ok, err := hole.Fits(peg)
		if err != nil {
			return outputError("check", err)
		}
		fit := CLIFit{
			Name:      strconv.FormatFloat(w, 'g', -1, 64),
			Shape:     "square",
			Width:     peg.Width(),
			HoleWidth: hole.Width(),
			Fits:      ok,
		}
		fits = append(fits, fit)
		bufferFit(batch, "check", fit, now)
	}

	if err := commit(batch); err != nil {
		return outputError("check", err)
	}
	return outputResult(CLIResult{Command: "check", Results: fits})
}

// bufferFit adds fit to batch as a fit-log record.
func bufferFit(batch *store.BatchedStore, source string, fit CLIFit, at time.Time) {
	_, _ = batch.InsertFit(&store.FitRecord{
		Source:     source,
		Shape:      fit.Shape,
		Formula:    fit.Formula,
		Radius:     fit.Radius,
		ShapeWidth: fit.Width,
		HoleWidth:  fit.HoleWidth,
		Fits:       fit.Fits,
		CheckedAt:  at,
	})
}
