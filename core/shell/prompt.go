package shell

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// DefaultPrompt is used when the configuration carries no template.
const DefaultPrompt = `\u@\h =\w> `

var (
	colorUser = color.New(color.FgCyan, color.Bold)
	colorPath = color.New(color.FgCyan)
)

// Prompt renders the prompt template for the current state. \u, \h and \w
// expand to the username, hostname and abbreviated working directory.
func (s *Shell) Prompt() string {
	prompt := s.config.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	user := s.getenv("USER")
	if user == "" {
		user = "unknown"
	}
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "?"
	}

	prompt = strings.ReplaceAll(prompt, `\u`, colorUser.Sprint(user))
	prompt = strings.ReplaceAll(prompt, `\h`, host)
	prompt = strings.ReplaceAll(prompt, `\w`, colorPath.Sprint(promptPath(wd, s.home())))
	return prompt
}

// promptPath abbreviates the working directory for the prompt: nothing at
// $HOME, "/name" one level below it, and otherwise the first letter of
// every component except the last. Paths outside $HOME keep their full
// component list but are abbreviated the same way.
func promptPath(wd, home string) string {
	if wd == home {
		return ""
	}

	relative := wd
	if strings.HasPrefix(wd, home) {
		relative = strings.TrimPrefix(wd, home)
	}

	var parts []string
	for _, part := range strings.Split(relative, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}

	switch len(parts) {
	case 0:
		return "/"
	case 1:
		return "/" + parts[0]
	}

	last := parts[len(parts)-1]
	abbrev := make([]string, 0, len(parts)-1)
	for _, part := range parts[:len(parts)-1] {
		r, _ := utf8.DecodeRuneInString(part)
		abbrev = append(abbrev, string(r))
	}

	return "/" + strings.Join(abbrev, "/") + "/" + last
}
