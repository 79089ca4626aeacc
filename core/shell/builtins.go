package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds every registered shell builtin keyed by command name.
// Anything not in this set is an external-program request.
var AllBuiltins = make(map[string]Builtin)

// Builtin is a command implemented inside the shell process. args includes
// the command name at index 0, getopt style.
type Builtin interface {
	Main(s *Shell, args []string) int
}

// BuiltinFunc adapts a plain function to the Builtin interface.
type BuiltinFunc func(s *Shell, args []string) int

func (f BuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// Cd changes the working directory. It records the directory that was
// current before a successful change so `cd -` can swap back.
func Cd(s *Shell, args []string) int {
	if len(args) > 2 {
		fmt.Fprintf(s.stderr, "%s: too many arguments\n", args[0])
		return 1
	}

	home := s.home()
	current, err := os.Getwd()
	if err != nil {
		current = "/"
	}

	var dest string
	switch {
	case len(args) == 1:
		if current == home {
			// Already home, nothing to do.
			return 0
		}
		dest = home

	case args[1] == "-":
		if !s.dirs.hasPrev {
			fmt.Fprintf(s.stderr, "%s: previous directory is not set\n", args[0])
			return 1
		}
		dest = s.dirs.prev
		fmt.Fprintln(s.stdout, dest)

	case strings.HasPrefix(args[1], "~"):
		dest = expandTilde(args[1], home)

	default:
		dest = args[1]
	}

	if err := os.Chdir(dest); err != nil {
		fmt.Fprintf(s.stderr, "%s: %v\n", args[0], err)
		return 1
	}

	s.dirs.prev, s.dirs.hasPrev = current, true
	return 0
}

// expandTilde resolves a leading ~ against home. "~x" is treated as
// home-relative "x", named-user lookup isn't supported.
func expandTilde(path, home string) string {
	if path == "~" {
		return home
	}
	suffix := strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/")
	if suffix == "" {
		return home
	}
	return filepath.Join(home, suffix)
}

// Pwd prints the working directory.
func Pwd(s *Shell, args []string) int {
	opts := getopt.New()
	logical := opts.BoolLong("logical", 'L', "use PWD from the environment, even if it contains symlinks")
	physical := opts.BoolLong("physical", 'P', "avoid all symlinks")
	helpOpt := opts.BoolLong("help", 'h', "display this help and exit")

	err := opts.Getopt(args, nil)
	if err == nil && len(opts.Args()) > 0 {
		err = fmt.Errorf("unexpected argument %q", opts.Args()[0])
	}
	if err != nil {
		fmt.Fprintf(s.stderr, "%s: %v\n", args[0], err)
		return 1
	}

	if *helpOpt {
		w := s.stdout
		fmt.Fprintln(w, "usage: pwd [-L|-P]")
		fmt.Fprintln(w, "Print the name of the current working directory.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		opts.PrintOptions(w)
		return 0
	}

	var wd string
	if *logical && !*physical {
		wd = s.getenv("PWD")
	}
	if wd == "" {
		osWd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(s.stderr, "%s: %v\n", args[0], err)
			return 1
		}
		wd = osWd
	}

	fmt.Fprintln(s.stdout, wd)
	return 0
}

// Help prints the builtin list.
func Help(s *Shell, args []string) int {
	w := s.stdout
	fmt.Fprintf(w, "This is %s, a small pipeline shell.\n", color.New(color.FgCyan, color.Bold).Sprint("rshell"))
	fmt.Fprintln(w, "These commands are defined internally:")
	fmt.Fprintln(w)

	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "\t%s\n", name)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use `man` for more information on other programs.")
	return 0
}

// Exit ends the session. The read loop persists history on the way out.
func Exit(s *Shell, args []string) int {
	s.quit = true
	return 0
}

// History displays or manipulates the history list.
func History(s *Shell, args []string) int {
	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")
	write := opts.Bool('w', "write the current history to the history file")

	// Anything besides -c or -w, including flags that are fine elsewhere,
	// is a usage error here.
	err := opts.Getopt(args, nil)
	if err == nil && len(opts.Args()) > 0 {
		err = fmt.Errorf("unexpected argument %q", opts.Args()[0])
	}
	if err != nil {
		w := s.stderr
		fmt.Fprintln(w, err)
		fmt.Fprintln(w, "usage: history [-c|-w]")
		fmt.Fprintln(w, "Display or manipulate the history list.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		opts.PrintOptions(w)
		return 1
	}

	switch {
	case *clear:
		if s.readline != nil {
			s.readline.Operation.ResetHistory()
		}
		s.history.Clear()
		if err := s.history.Persist(); err != nil {
			fmt.Fprintf(s.stderr, "%s: %v\n", args[0], err)
			return 1
		}
		fmt.Fprintln(s.stdout, "History cleared.")

	case *write:
		if err := s.history.Persist(); err != nil {
			fmt.Fprintf(s.stderr, "%s: %v\n", args[0], err)
			return 1
		}
		fmt.Fprintln(s.stdout, "History written to file.")

	default:
		for i, line := range s.history.List() {
			fmt.Fprintf(s.stdout, "%5d  %s\n", i+1, line)
		}
	}
	return 0
}

func init() {
	AllBuiltins["cd"] = BuiltinFunc(Cd)
	AllBuiltins["pwd"] = BuiltinFunc(Pwd)
	AllBuiltins["help"] = BuiltinFunc(Help)
	AllBuiltins["exit"] = BuiltinFunc(Exit)
	AllBuiltins["history"] = BuiltinFunc(History)
}
