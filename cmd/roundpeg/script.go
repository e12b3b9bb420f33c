package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jward/roundpeg/internal/runtime"
	"github.com/jward/roundpeg/scripts"
)

var scriptCmd = &cobra.Command{
	Use:   "script [path|name]...",
	Short: "Run Risor fit-test scripts",
	Long: `Runs Risor scripts with the host functions circle, square_hole, square_peg,
adapt and fits. Without an argument the bundled demo script runs. A name
without a path ("demo", "sequence") selects a bundled script. Several
scripts run in parallel; their fits are recorded once all have finished.`,
	RunE: runScript,
}

// scriptJob resolves a script argument to a runtime job. Existing files are
// read from disk; anything else names a bundled script.
func scriptJob(arg string) (runtime.Job, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return runtime.Job{}, err
		}
		name := filepath.Base(abs)
		return runtime.Job{
			ScriptsDir: filepath.Dir(abs),
			Script:     name,
			Source:     "script:" + name,
		}, nil
	}
	label := strings.TrimSuffix(arg, ".risor")
	return runtime.Job{
		FS:     scripts.FS,
		Script: label + ".risor",
		Source: "script:" + label,
	}, nil
}

func runScript(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"demo"}
	}

	jobs := make([]runtime.Job, 0, len(args))
	for _, arg := range args {
		job, err := scriptJob(arg)
		if err != nil {
			return outputError("script", err)
		}
		jobs = append(jobs, job)
	}

	logger.Debug("running scripts", "count", len(jobs))
	results := runtime.RunParallel(context.Background(), jobs,
		runtime.WithLogger(logger),
		runtime.WithFormula(selectedFormula()),
	)

	out := make([]CLIScriptResult, 0, len(results))
	failed := 0
	for _, res := range results {
		sr := CLIScriptResult{Script: strings.TrimPrefix(res.Job.Source, "script:")}
		if res.Err != nil {
			sr.Error = res.Err.Error()
			failed++
			out = append(out, sr)
			continue
		}
		if err := commit(res.Batch); err != nil {
			return outputError("script", err)
		}
		if res.Value != nil {
			sr.Value = res.Value.Inspect()
		}
		out = append(out, sr)
	}

	if err := outputResult(CLIResult{Command: "script", Results: out}); err != nil {
		return err
	}
	if failed > 0 {
		errorHandled = true
		return fmt.Errorf("%d of %d scripts failed", failed, len(results))
	}
	return nil
}
