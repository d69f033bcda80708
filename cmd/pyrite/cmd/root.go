// Package cmd implements the pyrite CLI: run/lex/parse/version subcommands
// over a persistent --verbose/--config surface.
//
// A package-level cobra rootCmd carries version metadata baked in via
// build flags, with a single init() wiring up persistent flags.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "pyrite",
	Short: "Pyrite language interpreter",
	Long: `pyrite is a tree-walking interpreter for the Pyrite language, a
dynamically-typed, Python-flavored scripting language: duck-typed values,
first-class functions, exceptions, generators, and a class model with
multiple inheritance resolved via C3 linearisation.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (validated against the built-in schema)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
