package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvrach/study-sessions/internal/history"
)

func TestGenerate_WritesDocuments(t *testing.T) {
	app, out := newTestApp(t, twoSessions)

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = (&GenerateCmd{}).Run(app)
	})
	require.NoError(t, runErr)

	assert.Contains(t, stdout, `Writing to: "`+out+`"...`)
	assert.Contains(t, stdout, "12;00 Tue Jul 01 LS171.md -> Success!")
	assert.Contains(t, stdout, "16;00 Wed Jul 02 PY109.md -> Success!")
	assert.Contains(t, stdout, "07-01 -> LS171 at 12:00\n07-02 -> PY109 at 16:00")

	data, err := os.ReadFile(filepath.Join(out, "12;00 Tue Jul 01 LS171.md"))
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "LS171 Networking and HTTP Study Session | Tuesday July 01, 2025 | 12:00 pm Eastern / 9:00 am Pacific")
	assert.Contains(t, doc, "==forum-url==")

	entries, err := history.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, history.KindDocument, entries[0].Kind)
	assert.Equal(t, "LS171", entries[0].Course)
	assert.Equal(t, "2025-07-01T12:00:00-04:00", entries[0].Start)
}

func TestGenerate_NeverOverwrites(t *testing.T) {
	app, out := newTestApp(t, twoSessions)

	existing := filepath.Join(out, "12;00 Tue Jul 01 LS171.md")
	require.NoError(t, os.WriteFile(existing, []byte("my edits"), 0o644))

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = (&GenerateCmd{}).Run(app)
	})
	require.NoError(t, runErr)

	assert.Contains(t, stdout, "12;00 Tue Jul 01 LS171.md -> Skipped because it already exists")
	assert.Contains(t, stdout, "16;00 Wed Jul 02 PY109.md -> Success!")

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "my edits", string(data))

	entries, err := history.Load()
	require.NoError(t, err)
	assert.Len(t, entries, 1, "skipped files are not recorded")
}

func TestGenerate_DryRun(t *testing.T) {
	app, out := newTestApp(t, twoSessions)

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = (&GenerateCmd{DryRun: true}).Run(app)
	})
	require.NoError(t, runErr)

	assert.Contains(t, stdout, "12;00 Tue Jul 01 LS171.md -> Dry run, not written")
	files, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestGenerate_ICS(t *testing.T) {
	app, out := newTestApp(t, twoSessions)

	var runErr error
	captureStdout(t, func() {
		runErr = (&GenerateCmd{ICS: true}).Run(app)
	})
	require.NoError(t, runErr)

	data, err := os.ReadFile(filepath.Join(out, "12;00 Tue Jul 01 LS171.ics"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VEVENT")

	entries, err := history.Load()
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestGenerate_AdhocSession(t *testing.T) {
	app, out := newTestApp(t, twoSessions)

	var runErr error
	captureStdout(t, func() {
		cmd := &GenerateCmd{SessionInput: SessionInput{Session: []string{"PY101 / PY109 12-13 16:00"}}}
		runErr = cmd.Run(app)
	})
	require.NoError(t, runErr)

	files, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "16;00 Sat Dec 13 PY101 - PY109.md", files[0].Name())
}

func TestGenerate_OutOverride(t *testing.T) {
	app, out := newTestApp(t, twoSessions)
	other := t.TempDir()

	var runErr error
	captureStdout(t, func() {
		runErr = (&GenerateCmd{Out: other}).Run(app)
	})
	require.NoError(t, runErr)

	written, err := os.ReadDir(other)
	require.NoError(t, err)
	assert.Len(t, written, 2)
	untouched, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, untouched)
}

func TestGenerate_JSON(t *testing.T) {
	app, out := newTestApp(t, twoSessions)
	app.JSON = true

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = (&GenerateCmd{}).Run(app)
	})
	require.NoError(t, runErr)

	var got generateResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, out, got.Dir)
	require.Len(t, got.Files, 2)
	assert.Equal(t, generatedFile{
		File:   "12;00 Tue Jul 01 LS171.md",
		Kind:   history.KindDocument,
		Course: "LS171",
		Status: statusWritten,
	}, got.Files[0])
	assert.Equal(t, []string{"07-01 -> LS171 at 12:00", "07-02 -> PY109 at 16:00"}, got.ByDay)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		session  string
		exitCode int
		code     string
	}{
		{"no sessions", "", "", ExitInvalidInput, "no_sessions"},
		{"unknown course", "", "CS999 07-01 12:00", ExitInvalidInput, "unknown_course"},
		{"no course selected", "sessions:\n  - course: (no course selected)\n    date: 07-01\n    time: \"12:00\"\n", "", ExitInvalidInput, "no_course"},
		{"invalid date", "", "LS171 02-30 12:00", ExitInvalidInput, "invalid_session"},
		{"invalid time", "", "LS171 07-01 24:00", ExitInvalidInput, "invalid_session"},
		{"malformed session", "", "LS171", ExitInvalidInput, "invalid_session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, tt.config)
			cmd := &GenerateCmd{}
			if tt.session != "" {
				cmd.Session = []string{tt.session}
			}

			var runErr error
			captureStdout(t, func() { runErr = cmd.Run(app) })
			requireCLIError(t, runErr, tt.exitCode, tt.code)
		})
	}
}

func TestGenerate_MissingOutputDir(t *testing.T) {
	app, out := newTestApp(t, twoSessions)
	require.NoError(t, os.Remove(out))

	err := (&GenerateCmd{}).Run(app)
	requireCLIError(t, err, ExitNotConfigured, "no_output_dir")
}

func TestGenerate_TimezoneDatabaseUnavailable(t *testing.T) {
	app, out := newTestAppWithLoader(t, twoSessions, brokenLoader)

	err := (&GenerateCmd{}).Run(app)
	requireCLIError(t, err, ExitNotConfigured, "tzdata_unavailable")

	files, readErr := os.ReadDir(out)
	require.NoError(t, readErr)
	assert.Empty(t, files, "nothing is written in degraded mode")
}
