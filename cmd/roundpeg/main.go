package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jward/roundpeg"
	"github.com/jward/roundpeg/internal/store"
)

var (
	flagDB       string
	flagFormat   string
	flagFormula  string
	flagVerbose  bool
	flagNoRecord bool
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

// logger is configured from --verbose before any command runs.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "roundpeg",
	Short:         "Fit round pegs into square holes",
	Long:          "Roundpeg tests circles against square holes through an adapter that reports a circle's width, and keeps a log of the results in SQLite.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(flagVerbose)
		if _, err := roundpeg.ParseFormula(flagFormula); err != nil {
			return err
		}
		return validateFormat(flagFormat)
	},
	// No Run: prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "fit log path (default: .roundpeg/fits.db relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.PersistentFlags().StringVar(&flagFormula, "formula", "diameter", "circle width formula: diameter|diagonal")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoRecord, "no-record", false, "do not write results to the fit log")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(historyCmd)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// selectedFormula returns the formula named by --formula. The flag is
// validated in PersistentPreRunE.
func selectedFormula() roundpeg.Formula {
	f, _ := roundpeg.ParseFormula(flagFormula)
	return f
}

// findRepoRoot walks up from startDir looking for a .git directory.
// Returns the directory containing .git, or startDir if not found.
func findRepoRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root without finding .git.
			return startDir
		}
		dir = parent
	}
}

// resolveDBPath returns the database path from the --db flag or the default.
func resolveDBPath(repoRoot string) string {
	if flagDB != "" {
		if filepath.IsAbs(flagDB) {
			return flagDB
		}
		return filepath.Join(repoRoot, flagDB)
	}
	return filepath.Join(repoRoot, ".roundpeg", "fits.db")
}

// currentDBPath resolves the fit log path for the working directory.
func currentDBPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}
	return resolveDBPath(findRepoRoot(cwd)), nil
}

// openStore opens the fit log, creating and migrating it when create is set.
func openStore(create bool) (*store.Store, error) {
	dbPath, err := currentDBPath()
	if err != nil {
		return nil, err
	}

	if create {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	} else if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("fit log not found: %s (run 'roundpeg check' first)", dbPath)
	}

	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening fit log: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrating fit log: %w", err)
	}
	logger.Debug("opened fit log", "path", dbPath)
	return s, nil
}

// commit writes a batch of buffered records to the fit log unless
// --no-record is set.
func commit(batch *store.BatchedStore) error {
	if flagNoRecord || batch.Len() == 0 {
		return nil
	}
	s, err := openStore(true)
	if err != nil {
		return err
	}
	defer s.Close()

	ids, err := s.CommitBatch(batch)
	if err != nil {
		return fmt.Errorf("recording fits: %w", err)
	}
	logger.Debug("recorded fits", "count", len(ids))
	return nil
}
