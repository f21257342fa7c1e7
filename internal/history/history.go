package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const maxEntries = 200

// Kinds of generated file.
const (
	KindDocument = "document"
	KindCalendar = "calendar"
)

// Entry records one generated file.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`
	Kind      string `json:"kind"`
	Course    string `json:"course"`
	File      string `json:"file"`
	Start     string `json:"start"` // RFC3339 session start
}

// dataDir returns the directory holding history.json.
// Exported as a var for testing.
var dataDir = defaultDataDir

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "study-sessions")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "study-sessions")
}

func historyPath() string {
	return filepath.Join(dataDir(), "history.json")
}

// withLock runs fn while holding an exclusive lock next to the history file.
func withLock(fn func() error) error {
	if err := os.MkdirAll(dataDir(), 0o700); err != nil {
		return err
	}
	lock := flock.New(historyPath() + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock history: %w", err)
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}

// Load reads the history file and returns all entries, oldest first.
// Returns nil slice and nil error if the file does not exist.
func Load() ([]Entry, error) {
	data, err := os.ReadFile(historyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Append records a generated file, capping the log at maxEntries.
// A corrupt history file is replaced rather than blocking generation.
func Append(kind, course, file string, start time.Time) (Entry, error) {
	entry := Entry{
		ID:        uuid.NewString()[:8],
		Timestamp: time.Now().Format(time.RFC3339),
		Kind:      kind,
		Course:    course,
		File:      file,
		Start:     start.Format(time.RFC3339),
	}

	err := withLock(func() error {
		entries, err := Load()
		if err != nil {
			// Corrupt file, start fresh.
			entries = nil
		}

		entries = append(entries, entry)

		// Cap at maxEntries (drop oldest).
		if len(entries) > maxEntries {
			entries = entries[len(entries)-maxEntries:]
		}
		return atomicWrite(entries)
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Clear removes all history entries.
func Clear() error {
	return withLock(func() error {
		return os.Remove(historyPath())
	})
}

func atomicWrite(entries []Entry) error {
	path := historyPath()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
