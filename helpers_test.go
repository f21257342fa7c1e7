package main

import (
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withTempHome points HOME and the XDG dirs at a temp directory so that
// config and history resolve inside it.
func withTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	return home
}

// newTestApp writes a config with a fresh output dir plus extra YAML, and
// returns an App with a fixed clock in New York.
func newTestApp(t *testing.T, extra string) (*App, string) {
	t.Helper()
	return newTestAppWithLoader(t, extra, time.LoadLocation)
}

func newTestAppWithLoader(t *testing.T, extra string, load func(string) (*time.Location, error)) (*App, string) {
	t.Helper()
	home := withTempHome(t)

	out := filepath.Join(home, "out")
	require.NoError(t, os.MkdirAll(out, 0o755))

	cfgDir := filepath.Join(home, ".config", "study-sessions")
	require.NoError(t, os.MkdirAll(cfgDir, 0o700))
	body := "output_dir: " + out + "\ninput_zone: America/New_York\n" + extra
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(body), 0o600))

	app := newApp(&Globals{}, load)
	app.Log = zerolog.Nop()
	app.Rand = rand.New(rand.NewPCG(1, 2))

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, ny)
	app.Now = func() time.Time { return now }

	return app, out
}

func brokenLoader(string) (*time.Location, error) {
	return nil, errors.New("unknown time zone")
}

const twoSessions = `sessions:
  - course: LS171
    date: 07-01
    time: "12:00"
  - course: PY109
    date: 07-02
    time: "16:00"
`

// captureStdout redirects os.Stdout to a pipe for the duration of fn,
// then returns whatever was written to stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	// Read from the pipe in a goroutine to avoid blocking if output exceeds
	// the pipe buffer size.
	var output string
	var wg sync.WaitGroup
	wg.Go(func() {
		data, _ := io.ReadAll(r)
		output = string(data)
	})

	fn()

	_ = w.Close()
	os.Stdout = oldStdout
	wg.Wait()
	_ = r.Close()
	return output
}

// requireCLIError asserts err is a *CLIError with the given exit code and code.
func requireCLIError(t *testing.T, err error, exitCode int, code string) {
	t.Helper()
	require.Error(t, err)
	var cliErr *CLIError
	require.True(t, errors.As(err, &cliErr), "want *CLIError, got %T: %v", err, err)
	assert.Equal(t, exitCode, cliErr.ExitCode, "exit code")
	assert.Equal(t, code, cliErr.Code, "error code")
}
