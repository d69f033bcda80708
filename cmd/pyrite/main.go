// Command pyrite is the command-line entry point for the Pyrite interpreter.
package main

import (
	"fmt"
	"os"

	"github.com/go-pyrite/pyrite/cmd/pyrite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
