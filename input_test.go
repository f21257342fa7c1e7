package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionInput_Flags(t *testing.T) {
	in := SessionInput{Session: []string{"LS171 01-08 11:00"}, Stdin: true}
	got, err := in.Resolve()
	require.NoError(t, err)
	assert.Equal(t, []string{"LS171 01-08 11:00"}, got, "flags win over stdin")
}

func TestSessionInput_None(t *testing.T) {
	got, err := (&SessionInput{}).Resolve()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.txt")
	require.NoError(t, os.WriteFile(path, []byte("# week 2\nLS171 01-08 11:00\n\n  PY109 01-09 16:00  \n"), 0o600))

	got, err := (&SessionInput{File: path}).Resolve()
	require.NoError(t, err)
	assert.Equal(t, []string{"LS171 01-08 11:00", "PY109 01-09 16:00"}, got)
}

func TestSessionInput_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing yet\n"), 0o600))

	_, err := (&SessionInput{File: path}).Resolve()
	requireCLIError(t, err, ExitInvalidInput, "no_sessions")
}

func TestSessionInput_Stdin(t *testing.T) {
	oldStdin := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = oldStdin })

	_, _ = w.Write([]byte("PEDAC 03-04 09:30\n"))
	_ = w.Close()

	got, err := (&SessionInput{Stdin: true}).Resolve()
	require.NoError(t, err)
	assert.Equal(t, []string{"PEDAC 03-04 09:30"}, got)
}
