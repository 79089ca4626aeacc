// Package history implements the bounded, persisted command history.
//
// The in-memory buffer and the on-disk file have independent caps: the
// buffer keeps the most recent HistorySize entries, the file keeps the most
// recent HistoryFileSize entries. Persisting always rewrites the whole file
// so stale lines never accumulate.
package history

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// Store holds the session's command history and mirrors it to a file.
type Store struct {
	fs       afero.Fs
	path     string
	size     int // in-memory cap
	fileSize int // on-disk cap

	entries []string
}

// NewStore creates an empty history store backed by path on the given
// filesystem. Call Load to seed it from a previous session.
func NewStore(fs afero.Fs, path string, size, fileSize int) *Store {
	return &Store{
		fs:       fs,
		path:     path,
		size:     size,
		fileSize: fileSize,
	}
}

// Accept records one submitted line and reports whether it was kept.
//
// Empty lines are skipped, as are lines whose raw form starts with a space
// (HISTCONTROL=ignorespace) and lines repeating the newest buffered entry
// (consecutive duplicates collapse to one). When the buffer outgrows its
// cap the oldest entries are evicted first.
func (s *Store) Accept(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(raw, " ") {
		return false
	}
	if len(s.entries) > 0 && s.entries[len(s.entries)-1] == trimmed {
		return false
	}

	s.entries = append(s.entries, trimmed)
	if over := len(s.entries) - s.size; over > 0 {
		s.entries = s.entries[over:]
	}
	return true
}

// List returns a copy of the buffered entries, oldest first.
func (s *Store) List() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of buffered entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Clear empties the in-memory buffer. The caller must Persist to make the
// clear durable.
func (s *Store) Clear() {
	s.entries = nil
}

// Persist rewrites the history file with the newest entries, dropping the
// oldest ones beyond the file cap.
func (s *Store) Persist() error {
	entries := s.entries
	if over := len(entries) - s.fileSize; over > 0 {
		entries = entries[over:]
	}

	var buf strings.Builder
	for _, entry := range entries {
		buf.WriteString(entry)
		buf.WriteByte('\n')
	}

	return afero.WriteFile(s.fs, s.path, []byte(buf.String()), 0600)
}

// Load replaces the buffer with the contents of the history file, keeping
// only the newest entries that fit the in-memory cap. A missing file is not
// an error, the session just starts with no history.
func (s *Store) Load() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			entries = append(entries, line)
		}
	}
	if over := len(entries) - s.size; over > 0 {
		entries = entries[over:]
	}

	s.entries = entries
	return nil
}
