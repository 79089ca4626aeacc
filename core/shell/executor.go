package shell

import (
	"fmt"
	"io"
	"os/exec"
)

// carried owns the not-yet-consumed output endpoint of the previous
// external stage. out is nil once the endpoint has been handed off to the
// next stage or discarded; cmd stays set so the final stage can be waited
// on.
type carried struct {
	cmd *exec.Cmd
	out io.ReadCloser
}

// take transfers ownership of the output endpoint to the caller. Returns
// nil when the stage had no piped output or it was already consumed.
func (c *carried) take() io.ReadCloser {
	out := c.out
	c.out = nil
	return out
}

// discard closes the endpoint if it is still owned.
func (c *carried) discard() {
	if c.out != nil {
		c.out.Close()
		c.out = nil
	}
}

// Execute runs one tokenized pipeline to completion.
//
// Builtins run synchronously in-process and never take part in stream
// chaining. External segments are spawned with stdin wired to the previous
// stage's output when one is carried, and stdout piped onward when another
// segment follows. A failed segment degrades only itself and whatever
// would have consumed its output, the remaining segments still run. Only
// the final external stage is waited on; intermediate stages exit on their
// own.
func (s *Shell) Execute(pipeline Pipeline) {
	var prev *carried

	for i, segment := range pipeline {
		if segment.Empty() {
			// An empty hole between pipes. Report it and move on; a
			// carried endpoint stays available for the next segment.
			fmt.Fprintln(s.stderr, "rshell: empty command in pipeline segment")
			continue
		}

		if builtin, ok := AllBuiltins[segment.Command]; ok {
			// Whatever the previous stage produced has nowhere to go.
			if prev != nil {
				prev.discard()
				prev = nil
			}

			builtin.Main(s, append([]string{segment.Command}, segment.Args...))
			if s.quit {
				return
			}
			continue
		}

		cmd := exec.Command(segment.Command, segment.Args...)
		cmd.Stderr = s.stderr

		var takenIn io.ReadCloser
		if prev != nil {
			takenIn = prev.take()
			prev = nil
		}
		if takenIn != nil {
			cmd.Stdin = takenIn
		} else {
			cmd.Stdin = s.stdin
		}

		var out io.ReadCloser
		if i == len(pipeline)-1 {
			cmd.Stdout = s.stdout
		} else {
			pipe, err := cmd.StdoutPipe()
			if err != nil {
				fmt.Fprintf(s.stderr, "%s: %v\n", segment.Command, err)
				if takenIn != nil {
					takenIn.Close()
				}
				continue
			}
			out = pipe
		}

		if err := cmd.Start(); err != nil {
			fmt.Fprintf(s.stderr, "%s: %v\n", segment.Command, err)
			s.log.SpawnError(segment.Command, err)
			if takenIn != nil {
				takenIn.Close()
			}
			// The next segment falls back to the shell's stdin instead of
			// blocking on a stage that never started.
			continue
		}
		if takenIn != nil {
			// The child holds its own descriptor now; the endpoint is
			// consumed.
			takenIn.Close()
		}

		prev = &carried{cmd: cmd, out: out}
	}

	// Join the last spawned stage so the loop doesn't prompt over its
	// output. If its pipe was never consumed, close it first so the child
	// isn't stuck writing to nobody.
	if prev != nil {
		prev.discard()
		_ = prev.cmd.Wait()
	}
}
