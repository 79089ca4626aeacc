package shell

import "strings"

// Segment is one command-and-arguments unit within a pipe-delimited line.
type Segment struct {
	Command string
	Args    []string
}

// Empty reports whether the segment has no command, i.e. the line had an
// empty hole between pipe separators. Execution treats this as a parse
// error rather than silently dropping it.
func (s Segment) Empty() bool {
	return s.Command == ""
}

// Pipeline is an ordered sequence of segments. Index 0 runs first and reads
// the shell's stdin, the last segment writes the shell's stdout.
type Pipeline []Segment

// Tokenize splits one input line into a pipeline.
//
// Segments are separated by a bare "|" with optional surrounding
// whitespace. Each segment is split into a command and arguments on
// whitespace. There is no quoting or escaping, so a pipe or space can never
// be part of a single argument.
func Tokenize(line string) Pipeline {
	var pipeline Pipeline
	for _, piece := range strings.Split(line, "|") {
		fields := strings.Fields(piece)
		if len(fields) == 0 {
			pipeline = append(pipeline, Segment{})
			continue
		}

		pipeline = append(pipeline, Segment{
			Command: fields[0],
			Args:    fields[1:],
		})
	}
	return pipeline
}
