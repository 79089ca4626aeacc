package main

import "github.com/rshell-sh/rshell/cmd"

func main() {
	cmd.Execute()
}
