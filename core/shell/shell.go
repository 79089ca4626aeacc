// Package shell implements the interactive read-eval loop: tokenizing
// pipe-chained command lines, dispatching builtins, spawning external
// programs with their streams wired together, and recording history.
package shell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/spf13/afero"

	"github.com/rshell-sh/rshell/core/config"
	"github.com/rshell-sh/rshell/core/history"
	"github.com/rshell-sh/rshell/core/logger"
)

// dirState tracks the directory cd last moved away from so `cd -` can swap
// back. The current directory itself is the process working directory.
type dirState struct {
	prev    string
	hasPrev bool
}

// Shell wires the readline loop, builtin registry, pipeline executor and
// history store together for one interactive session.
type Shell struct {
	config   *config.Configuration
	history  *history.Store
	log      *logger.Logger
	readline *readline.Instance

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	getenv func(string) string

	dirs dirState
	quit bool
}

// Options configures a Shell. Zero values fall back to the process streams
// and environment.
type Options struct {
	Config  *config.Configuration
	History *history.Store
	Log     *logger.Logger

	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer

	// Getenv overrides environment lookups, mainly for tests.
	Getenv func(string) string
}

// New creates a Shell with a readline editor bound to the given streams.
func New(opts Options) (*Shell, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.History == nil {
		// Ephemeral in-memory history; nothing survives the session.
		opts.History = history.NewStore(afero.NewMemMapFs(), "/history",
			opts.Config.HistorySize, opts.Config.HistoryFileSize)
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Log == nil {
		opts.Log = logger.NewNop()
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(opts.Stdin),
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,

		// The history store owns durability; readline only keeps the
		// in-memory recall for arrow keys.
		DisableAutoSaveHistory: true,
		HistoryLimit:           opts.Config.HistorySize,
	}
	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &Shell{
		config:   opts.Config,
		history:  opts.History,
		log:      opts.Log,
		readline: rl,
		stdin:    opts.Stdin,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		getenv:   opts.Getenv,
	}, nil
}

// Run drives the read-eval loop until exit, end of input, or an
// unrecoverable read error. History is persisted on every way out.
func (s *Shell) Run() error {
	s.log.SessionStart()
	defer s.log.SessionEnd()

	for !s.quit {
		s.readline.SetPrompt(s.Prompt())
		line, err := s.readline.Readline()

		switch {
		case err == io.EOF:
			// ^D ends the session the same way exit does.
			s.shutdown()
			return nil

		case err == readline.ErrInterrupt:
			// Abort the current line only, state stays intact.
			continue

		case err != nil:
			s.shutdown()
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Record before execution; Accept applies the ignore-space
		// convention to the raw line.
		if s.history.Accept(line) {
			_ = s.readline.SaveHistory(trimmed)
		}
		s.log.Command(trimmed)

		s.Execute(Tokenize(ExpandEnv(trimmed, s.getenv)))
	}

	s.shutdown()
	return nil
}

// Close releases the readline editor.
func (s *Shell) Close() error {
	return s.readline.Close()
}

// shutdown flushes history. Persistence failures are reported but never
// fatal: the session is ending anyway.
func (s *Shell) shutdown() {
	if err := s.history.Persist(); err != nil {
		fmt.Fprintf(s.stderr, "rshell: could not save history: %v\n", err)
	}
}

func (s *Shell) home() string {
	if home := s.getenv("HOME"); home != "" {
		return home
	}
	return "/"
}
