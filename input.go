package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// SessionInput provides ad-hoc session resolution (flags, file, stdin).
// Embedded in GenerateCmd and PreviewCmd.
type SessionInput struct {
	Session []string `help:"Ad-hoc session \"COURSE DATE TIME\" (repeatable); replaces the configured sessions." short:"s" sep:"none"`
	File    string   `help:"Read sessions from a file, one \"COURSE DATE TIME\" per line." short:"F" type:"existingfile"`
	Stdin   bool     `help:"Read sessions from stdin, one per line."`
}

// Resolve returns the ad-hoc session lines, checking flags -> file -> stdin.
// A nil result means the configured schedule applies.
func (in *SessionInput) Resolve() ([]string, error) {
	// 1. --session flags.
	if len(in.Session) > 0 {
		return in.Session, nil
	}

	// 2. --file flag.
	if in.File != "" {
		f, err := os.Open(in.File) //nolint:gosec // user-provided path via CLI flag
		if err != nil {
			return nil, newCLIError(ExitRuntimeError, "read_file_failed",
				fmt.Sprintf("Failed to read file %q: %s", in.File, err))
		}
		defer f.Close()
		return readSessionLines(f, fmt.Sprintf("File %q", in.File))
	}

	// 3. --stdin flag.
	if in.Stdin {
		return readSessionLines(os.Stdin, "stdin")
	}

	return nil, nil
}

// readSessionLines returns the non-blank, non-comment lines of r.
func readSessionLines(r io.Reader, source string) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	if len(lines) == 0 {
		return nil, newCLIError(ExitInvalidInput, "no_sessions",
			fmt.Sprintf("%s has no sessions.", source))
	}
	return lines, nil
}
