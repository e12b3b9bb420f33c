package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/roundpeg"
)

// Demo inputs: one hole, one circle that fits and one that does not.
const demoHoleWidth = 8

var demoRadii = []float64{3, 6}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Fit two circles into a square hole of width 8",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	hole, err := roundpeg.NewSquareHole(demoHoleWidth)
	if err != nil {
		return outputError("demo", err)
	}

	var fits []CLIFit
	for _, r := range demoRadii {
		fit, err := fitCircle(hole, r, selectedFormula())
		if err != nil {
			return outputError("demo", err)
		}
		fit.Name = fmt.Sprintf("radius-%g", r)
		fits = append(fits, fit)
	}

	if flagFormat == "text" {
		fmt.Fprintln(os.Stdout, "=== Adapter Pattern Demo ===")
		for _, f := range fits {
			fmt.Fprintf(os.Stdout, "\nTrying with a Circle of radius %g (width=%g):\n", *f.Radius, f.Width)
			fmt.Fprintf(os.Stdout, "Fits: %v\n", f.Fits)
		}
		return nil
	}
	return outputResult(CLIResult{Command: "demo", Results: fits})
}

// fitCircle wraps a circle of radius r in an adapter and tests it against
// hole.
func fitCircle(hole *roundpeg.SquareHole, r any, formula roundpeg.Formula) (CLIFit, error) {
	c, err := roundpeg.CircleFrom(r)
	if err != nil {
		return CLIFit{}, err
	}
	a, err := roundpeg.NewCircleAdapter(c, roundpeg.WithFormula(formula))
	if err != nil {
		return CLIFit{}, err
	}
	ok, err := hole.Fits(a)
	if err != nil {
		return CLIFit{}, err
	}
	radius := c.Radius()
	return CLIFit{
		Shape:     "circle",
		Formula:   formula.String(),
		Radius:    &radius,
		Width:     a.Width(),
		HoleWidth: hole.Width(),
		Fits:      ok,
	}, nil
}
