package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jward/roundpeg/internal/store"
)

var (
	flagLimit  int
	flagSource string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded fit-tests, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "maximum entries to list (0 for all)")
	historyCmd.Flags().StringVar(&flagSource, "source", "", "only list entries from this source (e.g. check, batch:seq.yaml)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := openStore(false)
	if err != nil {
		return outputError("history", err)
	}
	defer s.Close()

	var recs []*store.FitRecord
	if flagSource != "" {
		recs, err = s.FitsBySource(flagSource, flagLimit)
	} else {
		recs, err = s.RecentFits(flagLimit)
	}
	if err != nil {
		return outputError("history", err)
	}

	stats, err := s.Stats()
	if err != nil {
		return outputError("history", err)
	}

	h := CLIHistory{
		Total:   stats.Total,
		Fitting: stats.Fitting,
		Entries: make([]CLIHistoryEntry, 0, len(recs)),
	}
	for _, r := range recs {
		h.Entries = append(h.Entries, historyEntry(r))
	}
	return outputResult(CLIResult{Command: "history", Results: h})
}

func historyEntry(r *store.FitRecord) CLIHistoryEntry {
	return CLIHistoryEntry{
		ID:        r.ID,
		Source:    r.Source,
		CheckedAt: r.CheckedAt.UTC().Format(time.RFC3339),
		CLIFit: CLIFit{
			Shape:     r.Shape,
			Formula:   r.Formula,
			Radius:    r.Radius,
			Width:     r.ShapeWidth,
			HoleWidth: r.HoleWidth,
			Fits:      r.Fits,
		},
	}
}
