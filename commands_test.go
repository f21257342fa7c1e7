package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvrach/study-sessions/internal/config"
	"github.com/lvrach/study-sessions/internal/history"
)

func TestByDay(t *testing.T) {
	app, _ := newTestApp(t, `sessions:
  - course: PY109
    date: 07-02
    time: "16:00"
  - course: LS171
    date: 07-01
    time: "12:00"
  - course: PEDAC
    date: 07-02
    time: "18:30"
`)

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = (&ByDayCmd{}).Run(app)
	})
	require.NoError(t, runErr)

	assert.Equal(t, []string{
		"07-01 -> LS171 at 12:00",
		"07-02 -> PY109 at 16:00, PEDAC at 18:30",
		"3 session(s) on 2 day(s)",
	}, strings.Split(strings.TrimSpace(stdout), "\n"))
}

func TestByDay_WorksWithoutTimezoneDatabase(t *testing.T) {
	app, _ := newTestAppWithLoader(t, twoSessions, brokenLoader)
	app.JSON = true

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = (&ByDayCmd{}).Run(app)
	})
	require.NoError(t, runErr)

	var got []byDayJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []byDayJSON{
		{Date: "07-01", Sessions: []string{"LS171 at 12:00"}},
		{Date: "07-02", Sessions: []string{"PY109 at 16:00"}},
	}, got)
}

func TestByDay_Empty(t *testing.T) {
	app, _ := newTestApp(t, "")

	stdout := captureStdout(t, func() {
		require.NoError(t, (&ByDayCmd{}).Run(app))
	})
	assert.Equal(t, "No sessions scheduled.\n", stdout)
}

func TestInvalidConfig(t *testing.T) {
	app, _ := newTestApp(t, "duration_minutes: 5\n")

	err := (&ByDayCmd{}).Run(app)
	requireCLIError(t, err, ExitNotConfigured, "invalid_config")
}

func TestCatalog(t *testing.T) {
	app, _ := newTestApp(t, "")

	stdout := captureStdout(t, func() {
		require.NoError(t, (&CatalogCmd{}).Run(app))
	})
	assert.Contains(t, stdout, "ls171")
	assert.Contains(t, stdout, "PY129 Object Oriented Programming Study Session")
}

func TestCatalog_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`courses:
  - key: rb101
    full_name: RB101 Study Session
    enrollment: RB101
    activity: Practice problems
misc:
  greetings: ["Hi all!"]
  post_session_thanks: ["Thanks!"]
`), 0o600))
	app, _ := newTestApp(t, "catalog: "+path+"\n")
	app.JSON = true

	stdout := captureStdout(t, func() {
		require.NoError(t, (&CatalogCmd{}).Run(app))
	})

	var got []catalogJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "rb101", got[0].Key)
}

func TestCatalog_Invalid(t *testing.T) {
	app, _ := newTestApp(t, "catalog: /does/not/exist.yaml\n")

	err := (&CatalogCmd{}).Run(app)
	requireCLIError(t, err, ExitNotConfigured, "invalid_catalog")
}

func TestHistory_ListAndClear(t *testing.T) {
	app, _ := newTestApp(t, twoSessions)

	captureStdout(t, func() {
		require.NoError(t, (&GenerateCmd{}).Run(app))
	})

	stdout := captureStdout(t, func() {
		require.NoError(t, (&HistoryCmd{}).Run(app))
	})
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "16;00 Wed Jul 02 PY109.md", "newest first")
	assert.Contains(t, lines[1], "12;00 Tue Jul 01 LS171.md")

	stdout = captureStdout(t, func() {
		require.NoError(t, (&HistoryCmd{Clear: true}).Run(app))
	})
	assert.Equal(t, "History cleared.\n", stdout)

	entries, err := history.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_EmptyJSON(t *testing.T) {
	app, _ := newTestApp(t, "")
	app.JSON = true

	stdout := captureStdout(t, func() {
		require.NoError(t, (&HistoryCmd{}).Run(app))
	})
	assert.Equal(t, "[]\n", stdout)
}

func TestPreview_Raw(t *testing.T) {
	app, _ := newTestApp(t, twoSessions)

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = (&PreviewCmd{Index: 2, Raw: true}).Run(app)
	})
	require.NoError(t, runErr)
	assert.Contains(t, stdout, "PY109 Assessment Prep Study Session | Wednesday July 02, 2025 | 4:00 pm Eastern / 1:00 pm Pacific")
}

func TestPreview_Rendered(t *testing.T) {
	app, out := newTestApp(t, twoSessions)

	var runErr error
	stdout := captureStdout(t, func() {
		runErr = (&PreviewCmd{Index: 1}).Run(app)
	})
	require.NoError(t, runErr)
	assert.Contains(t, stdout, "12;00 Tue Jul 01 LS171.md")
	assert.Contains(t, stdout, "FORUM POST")

	files, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, files, "preview never writes")
}

func TestPreview_BadIndex(t *testing.T) {
	app, _ := newTestApp(t, twoSessions)

	err := (&PreviewCmd{Index: 3}).Run(app)
	requireCLIError(t, err, ExitInvalidInput, "invalid_index")
}

func TestInit_FromFlags(t *testing.T) {
	app, _ := newTestApp(t, twoSessions)
	dir := t.TempDir()

	stdout := captureStdout(t, func() {
		require.NoError(t, (&InitCmd{OutputDir: dir, Organizer: "Ada", InputZone: "America/Chicago"}).Run(app))
	})
	assert.Contains(t, stdout, "Config written to "+config.Path())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.OutputDir)
	assert.Equal(t, "Ada", cfg.Organizer)
	assert.Equal(t, "America/Chicago", cfg.InputZone)
	assert.Len(t, cfg.Sessions, 2, "existing sessions are kept")
}

func TestInit_Errors(t *testing.T) {
	app, _ := newTestApp(t, "")

	err := (&InitCmd{OutputDir: filepath.Join(t.TempDir(), "missing")}).Run(app)
	requireCLIError(t, err, ExitInvalidInput, "invalid_output_dir")

	err = (&InitCmd{OutputDir: t.TempDir(), InputZone: "Mars/Olympus"}).Run(app)
	requireCLIError(t, err, ExitInvalidInput, "invalid_config")
}
