package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jward/roundpeg/internal/batch"
	"github.com/jward/roundpeg/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file.yaml>",
	Short: "Run the fit-tests described in a YAML batch file",
	Long:  "Runs every shape in the batch file against its hole. Shapes that cannot be built are reported individually; the command exits non-zero if any shape failed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	f, err := batch.Load(args[0])
	if err != nil {
		return outputError("batch", err)
	}
	if cmd.Flags().Changed("formula") && f.Formula == "" {
		f.Formula = flagFormula
	}

	report, err := f.Run()
	if err != nil {
		return outputError("batch", err)
	}

	buf := store.NewBatchedStore()
	source := "batch:" + filepath.Base(args[0])
	if err := report.Record(buf, source, time.Now().UTC()); err != nil {
		return outputError("batch", err)
	}
	if err := commit(buf); err != nil {
		return outputError("batch", err)
	}

	fits := make([]CLIFit, 0, len(report.Results))
	for _, res := range report.Results {
		fit := CLIFit{
			Name:      res.Name,
			Shape:     res.Kind,
			Radius:    res.Radius,
			Width:     res.Width,
			HoleWidth: report.HoleWidth,
			Fits:      res.Fits,
		}
		if res.Kind == "circle" {
			fit.Formula = report.Formula.String()
		}
		if res.Err != nil {
			fit.Error = res.Err.Error()
		}
		fits = append(fits, fit)
	}
	if err := outputResult(CLIResult{Command: "batch", Results: fits}); err != nil {
		return err
	}

	if n := report.Failed(); n > 0 {
		logger.Warn("batch had failing shapes", "file", args[0], "failed", n)
		errorHandled = true
		return fmt.Errorf("%d of %d shapes failed", n, len(report.Results))
	}
	return nil
}
