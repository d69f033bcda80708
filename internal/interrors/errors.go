// Package interrors formats source-positioned errors (lexer, parser, and
// runtime tracebacks) with a line-number gutter and a caret pointer.
//
// The caret column is computed via golang.org/x/text/width so it still
// lines up under double-width CJK/fullwidth runes, rather than assuming
// one column per rune.
package interrors

import (
	"fmt"
	"strings"

	"github.com/go-pyrite/pyrite/internal/token"
	"golang.org/x/text/width"
)

// CompilerError is a single source-positioned failure: a lexer, parser, or
// runtime error rendered in the same display format.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
	Suggestion string // optional "did you mean 'x'?" suffix
}

// NewCompilerError builds a CompilerError.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a source-line gutter and caret, optionally
// ANSI-colored.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		caretCol := displayWidth(sourceLine, e.Pos.Column)
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+caretCol))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// displayWidth computes the terminal column offset of the (1-indexed) rune
// column in line, summing each preceding rune's east-asian/combining
// display width instead of assuming one column per rune.
func displayWidth(line string, col int) int {
	runes := []rune(line)
	limit := col - 1
	if limit > len(runes) {
		limit = len(runes)
	}
	total := 0
	for i := 0; i < limit; i++ {
		total += runeWidth(runes[i])
	}
	return total
}

func runeWidth(r rune) int {
	p := width.LookupRune(r)
	switch p.Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	case width.EastAsianNarrow, width.EastAsianAmbiguous, width.Neutral:
		return 1
	default:
		return 1
	}
}

func (e *CompilerError) getSourceLine(line int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// getSourceContext returns contextLines before/after line, each prefixed
// with its own gutter, for FormatWithContext.
func (e *CompilerError) getSourceContext(line, contextLines int) []string {
	if e.Source == "" {
		return nil
	}
	lines := strings.Split(e.Source, "\n")
	start := line - contextLines
	if start < 1 {
		start = 1
	}
	end := line + contextLines
	if end > len(lines) {
		end = len(lines)
	}
	out := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		marker := "    "
		if i == line {
			marker = " -> "
		}
		out = append(out, fmt.Sprintf("%s%4d | %s", marker, i, lines[i-1]))
	}
	return out
}

// FormatWithContext renders the error with contextLines of surrounding
// source above and below the failing line.
func (e *CompilerError) FormatWithContext(contextLines int, color bool) string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}
	sb.WriteString(e.Message)
	sb.WriteString("\n")
	for _, l := range e.getSourceContext(e.Pos.Line, contextLines) {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	if e.Suggestion != "" {
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatErrors renders multiple errors with "[Error N of M]" headers.
func FormatErrors(errs []*CompilerError, color bool) string {
	var sb strings.Builder
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
