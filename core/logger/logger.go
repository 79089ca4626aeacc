// Package logger records session events as newline delimited JSON.
//
// Logging is strictly best-effort: a shell session must keep working even
// when the log can't be written, so write errors are swallowed.
package logger

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
)

// Event types emitted during a session.
const (
	EventSessionStart = "session_start"
	EventSessionEnd   = "session_end"
	EventCommand      = "command"
	EventSpawnError   = "spawn_error"
)

// Event is one log line.
type Event struct {
	Time      time.Time `json:"time"`
	SessionID string    `json:"session_id"`
	Type      string    `json:"event"`
	Command   string    `json:"command,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Logger writes session events to a single destination.
type Logger struct {
	sessionID string
	enc       *json.Encoder
	now       func() time.Time
}

// New creates a logger writing JSON lines to w.
func New(w io.Writer) *Logger {
	return &Logger{
		sessionID: uuid.NewString(),
		enc:       json.NewEncoder(w),
		now:       time.Now,
	}
}

// NewNop creates a logger that discards everything.
func NewNop() *Logger {
	return New(io.Discard)
}

// SessionStart marks the beginning of an interactive session.
func (l *Logger) SessionStart() {
	l.record(Event{Type: EventSessionStart})
}

// SessionEnd marks the end of an interactive session.
func (l *Logger) SessionEnd() {
	l.record(Event{Type: EventSessionEnd})
}

// Command records one accepted command line.
func (l *Logger) Command(line string) {
	l.record(Event{Type: EventCommand, Command: line})
}

// SpawnError records a failure to start an external program.
func (l *Logger) SpawnError(name string, err error) {
	l.record(Event{Type: EventSpawnError, Command: name, Error: err.Error()})
}

func (l *Logger) record(ev Event) {
	ev.Time = l.now()
	ev.SessionID = l.sessionID
	// Best-effort, see package comment.
	_ = l.enc.Encode(ev)
}

// ReadEvents parses a newline delimited JSON event log.
func ReadEvents(r io.Reader, handler func(ev Event)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var ev Event
		if err := decoder.Decode(&ev); err != nil {
			return err
		}
		handler(ev)
	}
	return nil
}
