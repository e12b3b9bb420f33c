package main_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "roundpeg"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	bin := filepath.Join(t.TempDir(), binName)
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = filepath.Join(projectRoot(t), "cmd", "roundpeg")
	cmd.Env = append(os.Environ(), "CGO_ENABLED=1")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(out))
	return bin
}

// projectRoot returns the root of the module by walking up from the test
// file's directory to find go.mod.
func projectRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, parent, dir, "could not find project root")
		dir = parent
	}
}

// createWorkDir returns a temp directory marked as a repo root so the fit
// log lands inside it.
func createWorkDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

// run executes the binary in dir and returns the parsed CLIResult and
// whether the command exited successfully.
func run(t *testing.T, bin, dir string, args ...string) (map[string]any, bool) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	stdout, err := cmd.Output()
	// Allow non-zero exit for error cases, but we always expect JSON on stdout.
	if err != nil && len(stdout) == 0 {
		t.Fatalf("command %v failed with no output: %v", args, err)
	}

	var result map[string]any
	require.NoError(t, json.Unmarshal(stdout, &result), "invalid JSON output: %s", string(stdout))
	return result, err == nil
}

func fitsOf(t *testing.T, result map[string]any) []bool {
	t.Helper()
	results, ok := result["results"].([]any)
	require.True(t, ok, "results should be an array")
	out := make([]bool, len(results))
	for i, r := range results {
		out[i] = r.(map[string]any)["fits"].(bool)
	}
	return out
}

func TestCLI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)

	t.Run("demo", func(t *testing.T) {
		dir := createWorkDir(t)
		result, ok := run(t, bin, dir, "demo")
		require.True(t, ok)
		assert.Equal(t, "demo", result["command"])
		assert.Equal(t, []bool{true, false}, fitsOf(t, result))
		assert.NoFileExists(t, filepath.Join(dir, ".roundpeg", "fits.db"), "demo does not record")
	})

	t.Run("demo text", func(t *testing.T) {
		cmd := exec.Command(bin, "demo", "--format", "text")
		cmd.Dir = createWorkDir(t)
		out, err := cmd.Output()
		require.NoError(t, err)
		assert.Contains(t, string(out), "=== Adapter Pattern Demo ===")
		assert.Contains(t, string(out), "Fits: true")
		assert.Contains(t, string(out), "Fits: false")
	})

	t.Run("check records and history lists", func(t *testing.T) {
		dir := createWorkDir(t)

		result, ok := run(t, bin, dir, "check", "--hole", "7", "1", "2.5", "4", "6")
		require.True(t, ok)
		assert.Equal(t, []bool{true, true, false, false}, fitsOf(t, result))
		require.FileExists(t, filepath.Join(dir, ".roundpeg", "fits.db"))

		result, ok = run(t, bin, dir, "check", "--hole", "8", "--peg", "8")
		require.True(t, ok)
		assert.Equal(t, []bool{true}, fitsOf(t, result))

		result, ok = run(t, bin, dir, "history", "--limit", "0")
		require.True(t, ok)
		h := result["results"].(map[string]any)
		assert.Equal(t, float64(5), h["total"])
		assert.Equal(t, float64(3), h["fitting"])
		assert.Len(t, h["entries"], 5)
	})

	t.Run("check rejects bad input", func(t *testing.T) {
		dir := createWorkDir(t)

		result, ok := run(t, bin, dir, "check", "--hole", "8", "x")
		assert.False(t, ok)
		assert.Contains(t, result["error"], "radius must be a number")

		result, ok = run(t, bin, dir, "check", "--hole", "8", "--", "-1")
		assert.False(t, ok)
		assert.Contains(t, result["error"], "radius must be non-negative")

		result, ok = run(t, bin, dir, "check", "--hole", "0", "1")
		assert.False(t, ok)
		assert.Contains(t, result["error"], "must be a positive number")
	})

	t.Run("infinite values are rejected before recording", func(t *testing.T) {
		dir := createWorkDir(t)

		result, ok := run(t, bin, dir, "check", "--hole", "8", "inf")
		assert.False(t, ok)
		assert.Contains(t, result["error"], "radius must be finite")

		result, ok = run(t, bin, dir, "check", "--hole", "inf", "1")
		assert.False(t, ok)
		assert.Contains(t, result["error"], "must be a positive number")

		result, ok = run(t, bin, dir, "check", "--hole", "8", "--peg", "inf")
		assert.False(t, ok)
		assert.Contains(t, result["error"], "width must be finite")

		path := filepath.Join(dir, "inf.yaml")
		require.NoError(t, os.WriteFile(path, []byte("hole: 8\nshapes:\n  - radius: .inf\n  - radius: 1\n"), 0o644))
		result, ok = run(t, bin, dir, "batch", path)
		assert.False(t, ok)
		require.Len(t, result["results"], 2)

		// Only the finite batch shape reached the fit log, and it still encodes.
		result, ok = run(t, bin, dir, "history")
		require.True(t, ok)
		assert.Equal(t, float64(1), result["results"].(map[string]any)["total"])
	})

	t.Run("diagonal formula", func(t *testing.T) {
		dir := createWorkDir(t)
		result, ok := run(t, bin, dir, "check", "--no-record", "--formula", "diagonal", "--hole", "8", "5")
		require.True(t, ok)
		assert.Equal(t, []bool{true}, fitsOf(t, result))
		assert.NoFileExists(t, filepath.Join(dir, ".roundpeg", "fits.db"))
	})

	t.Run("batch", func(t *testing.T) {
		dir := createWorkDir(t)
		path := filepath.Join(dir, "seq.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
hole: 7
shapes:
  - radius: 1
  - radius: 2.5
  - radius: 4
  - radius: 6
`), 0o644))

		result, ok := run(t, bin, dir, "batch", path)
		require.True(t, ok)
		assert.Equal(t, []bool{true, true, false, false}, fitsOf(t, result))

		result, ok = run(t, bin, dir, "history", "--source", "batch:seq.yaml")
		require.True(t, ok)
		assert.Len(t, result["results"].(map[string]any)["entries"], 4)

		result, ok = run(t, bin, dir, "history", "--source", "batch:seq.yaml", "--limit", "2")
		require.True(t, ok)
		assert.Len(t, result["results"].(map[string]any)["entries"], 2)
	})

	t.Run("batch with failing shape", func(t *testing.T) {
		dir := createWorkDir(t)
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("hole: 8\nshapes:\n  - radius: x\n  - radius: 3\n"), 0o644))

		result, ok := run(t, bin, dir, "batch", path)
		assert.False(t, ok)
		results := result["results"].([]any)
		require.Len(t, results, 2)
		assert.Contains(t, results[0].(map[string]any)["error"], "radius must be a number")
		assert.Equal(t, true, results[1].(map[string]any)["fits"])
	})

	t.Run("script", func(t *testing.T) {
		dir := createWorkDir(t)

		result, ok := run(t, bin, dir, "script")
		require.True(t, ok)
		scripts := result["results"].([]any)
		require.Len(t, scripts, 1)
		assert.Equal(t, "[true, false]", scripts[0].(map[string]any)["value"])

		result, ok = run(t, bin, dir, "history")
		require.True(t, ok)
		assert.Equal(t, float64(2), result["results"].(map[string]any)["total"])
	})

	t.Run("history is newest first outside UTC", func(t *testing.T) {
		dir := createWorkDir(t)
		runTZ := func(args ...string) map[string]any {
			cmd := exec.Command(bin, args...)
			cmd.Dir = dir
			cmd.Env = append(os.Environ(), "TZ=America/Los_Angeles")
			out, err := cmd.Output()
			require.NoError(t, err, "%v", args)
			var result map[string]any
			require.NoError(t, json.Unmarshal(out, &result))
			return result
		}

		runTZ("check", "--hole", "8", "1")
		runTZ("script", "demo")
		runTZ("check", "--hole", "8", "2")

		entries := runTZ("history")["results"].(map[string]any)["entries"].([]any)
		require.Len(t, entries, 4)
		var sources []string
		for _, e := range entries {
			sources = append(sources, e.(map[string]any)["source"].(string))
		}
		assert.Equal(t, []string{"check", "script:demo", "script:demo", "check"}, sources)
	})

	t.Run("script parallel with failure", func(t *testing.T) {
		dir := createWorkDir(t)
		path := filepath.Join(dir, "bad.risor")
		require.NoError(t, os.WriteFile(path, []byte(`fits(square_hole(5), circle(1))`), 0o644))

		result, ok := run(t, bin, dir, "script", "demo", path, "sequence")
		assert.False(t, ok)
		scripts := result["results"].([]any)
		require.Len(t, scripts, 3)
		assert.Equal(t, "demo", scripts[0].(map[string]any)["script"])
		assert.Equal(t, "[true, false]", scripts[0].(map[string]any)["value"])
		assert.Contains(t, scripts[1].(map[string]any)["error"], "does not implement")
		assert.Equal(t, "[true, true, false, false, true]", scripts[2].(map[string]any)["value"])

		result, ok = run(t, bin, dir, "history", "--source", "script:sequence")
		require.True(t, ok)
		assert.Len(t, result["results"].(map[string]any)["entries"], 5)
	})

	t.Run("history without log", func(t *testing.T) {
		result, ok := run(t, bin, createWorkDir(t), "history")
		assert.False(t, ok)
		assert.Contains(t, result["error"], "fit log not found")
	})
}
