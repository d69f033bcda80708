package cmd

import (
	"fmt"
	"os"

	"github.com/go-pyrite/pyrite/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Pyrite source file and print the resulting module",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	source := string(content)

	mod, errs := parser.Parse(source)
	if len(errs) > 0 {
		return reportParseErrors(errs, source, args[0])
	}

	fmt.Println(mod.String())
	return nil
}
