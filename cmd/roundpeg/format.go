package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// formatFitsText formats CLIFit results as aligned columns.
func formatFitsText(w io.Writer, fits []CLIFit) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSHAPE\tRADIUS\tWIDTH\tHOLE\tFITS")
	for _, f := range fits {
		if f.Error != "" {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t%g\terror: %s\n", f.Name, f.Shape, f.HoleWidth, f.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%v\n",
			f.Name, f.Shape, formatRadius(f.Radius), f.Width, f.HoleWidth, f.Fits)
	}
	tw.Flush()
}

// formatHistoryText formats the fit log as aligned columns with a totals line.
func formatHistoryText(w io.Writer, h CLIHistory) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSOURCE\tSHAPE\tFORMULA\tRADIUS\tWIDTH\tHOLE\tFITS\tCHECKED")
	for _, e := range h.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%g\t%g\t%v\t%s\n",
			e.ID, e.Source, e.Shape, e.Formula, formatRadius(e.Radius),
			e.Width, e.HoleWidth, e.Fits, e.CheckedAt)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d checks, %d fit\n", h.Total, h.Fitting)
}

func formatRadius(r *float64) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *r)
}

// outputResultText dispatches to the appropriate text formatter based on the
// result type. It writes to os.Stdout.
func outputResultText(result CLIResult) error {
	w := io.Writer(os.Stdout)

	switch v := result.Results.(type) {
	case []CLIFit:
		formatFitsText(w, v)
	case CLIHistory:
		formatHistoryText(w, v)
	case []CLIScriptResult:
		for _, r := range v {
			if r.Error != "" {
				fmt.Fprintf(w, "%s => error: %s\n", r.Script, r.Error)
				continue
			}
			fmt.Fprintf(w, "%s => %s\n", r.Script, r.Value)
		}
	case nil:
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// outputResult writes result in the selected format.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	result := CLIResult{
		Command: command,
		Error:   err.Error(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
	return err
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
