package shell

import (
	"os"
	"regexp"
)

var envRegex = regexp.MustCompile(`(\$\$|\$\w+)`)

// ExpandEnv substitutes $VAR references in line using getenv.
//
// $PWD always answers with the live working directory since the shell
// changes directory without rewriting its environment. $$ is left alone and
// unknown variables expand to nothing.
func ExpandEnv(line string, getenv func(string) string) string {
	return envRegex.ReplaceAllStringFunc(line, func(match string) string {
		if match == "$$" {
			return match
		}

		name := match[1:]
		if name == "PWD" {
			if wd, err := os.Getwd(); err == nil {
				return wd
			}
		}
		return getenv(name)
	})
}
