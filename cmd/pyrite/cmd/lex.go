package cmd

import (
	"fmt"
	"os"

	"github.com/go-pyrite/pyrite/internal/lexer"
	"github.com/spf13/cobra"
)

var lexOnlyErrors bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Pyrite source file and print the token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "print only the lexing error, if any")
}

func runLex(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	l := lexer.New(string(content))
	tokens, err := l.Tokenize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lex error: %s\n", err)
		if lexOnlyErrors {
			return nil
		}
		return fmt.Errorf("tokenizing failed")
	}
	if lexOnlyErrors {
		return nil
	}

	for _, tok := range tokens {
		fmt.Printf("%-12s %s\n", tok.Pos, tok.String())
	}
	return nil
}
