package cmd

import (
	"fmt"
	"os"

	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/cache"
	"github.com/go-pyrite/pyrite/internal/config"
	"github.com/go-pyrite/pyrite/internal/interp"
	"github.com/go-pyrite/pyrite/internal/interrors"
	"github.com/go-pyrite/pyrite/internal/object"
	"github.com/go-pyrite/pyrite/internal/parser"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	asyncRun bool
)

var parseCache = cache.New()

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Pyrite program",
	Long: `Execute a Pyrite program from a file or inline source.

Examples:
  # Run a script file
  pyrite run script.pyr

  # Evaluate inline source
  pyrite run -e "print('hello')"

  # Run with a config file pre-seeding the global scope
  pyrite run --config pyrite.yaml script.pyr`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	runCmd.Flags().BoolVar(&asyncRun, "async", false, "run via the runAsync entry point, awaiting a top-level coroutine")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	globals, err := loadConfigGlobals()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Running %s (%d bytes)\n", filename, len(source))
	}

	mod, parseErrs, err := parseCached(source)
	if err != nil {
		return err
	}
	if len(parseErrs) > 0 {
		return reportParseErrors(parseErrs, source, filename)
	}

	it := interp.CreateInterpreter(os.Stdout, globals)
	var result object.Value
	if asyncRun {
		v, err := it.Run(mod)
		if err != nil {
			return reportRuntimeError(err)
		}
		if co, ok := v.(*object.Coroutine); ok {
			result, err = co.Await()
			if err != nil {
				return reportRuntimeError(err)
			}
		} else {
			result = v
		}
	} else {
		result, err = it.Run(mod)
		if err != nil {
			return reportRuntimeError(err)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "=> %s\n", result.Inspect())
	}
	return nil
}

func readSource(evalExpr string, args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
}

func loadConfigGlobals() (map[string]object.Value, error) {
	if configPath == "" {
		return nil, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	globals := make(map[string]object.Value, len(cfg.Globals))
	for name, v := range cfg.Globals {
		globals[name] = fromJSONValue(v)
	}
	return globals, nil
}

// fromJSONValue converts a decoded YAML/JSON scalar/container into the
// matching host-native Pyrite value, for pre-seeding the global scope from
// a --config document.
func fromJSONValue(v any) object.Value {
	switch x := v.(type) {
	case nil:
		return object.None
	case bool:
		return object.BoolOf(x)
	case float64:
		if x == float64(int64(x)) {
			return object.NewInt(int64(x))
		}
		return &object.Float{Value: x}
	case string:
		return &object.Str{Value: x}
	case []any:
		elems := make([]object.Value, len(x))
		for i, e := range x {
			elems[i] = fromJSONValue(e)
		}
		return &object.List{Elems: elems}
	case map[string]any:
		d := object.NewDict()
		for k, e := range x {
			d.Set(&object.Str{Value: k}, fromJSONValue(e))
		}
		return d
	}
	return object.None
}

// parserModule bundles a parse outcome so it can be cached as a single any
// value keyed on source text.
type parserModule struct {
	mod  *ast.Module
	errs []parser.Error
}

func parseCached(source string) (*ast.Module, []parser.Error, error) {
	v, err := parseCache.GetOrCompute(source, func() (any, error) {
		mod, errs := parser.Parse(source)
		return &parserModule{mod: mod, errs: errs}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	pm := v.(*parserModule)
	return pm.mod, pm.errs, nil
}

func reportParseErrors(errs []parser.Error, source, filename string) error {
	compilerErrors := make([]*interrors.CompilerError, len(errs))
	for i, e := range errs {
		compilerErrors[i] = interrors.NewCompilerError(e.Pos, e.Message, source, filename)
	}
	fmt.Fprint(os.Stderr, interrors.FormatErrors(compilerErrors, true))
	return fmt.Errorf("parsing failed with %d error(s)", len(errs))
}

func reportRuntimeError(err error) error {
	if pe, ok := err.(*interp.PyError); ok {
		fmt.Fprintf(os.Stderr, "%s\n", pe.Error())
		return fmt.Errorf("execution failed")
	}
	fmt.Fprintf(os.Stderr, "%s\n", err)
	return fmt.Errorf("execution failed")
}
