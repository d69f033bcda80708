package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestRunScriptFromFile(t *testing.T) {
	oldEval, oldAsync, oldConfig := evalExpr, asyncRun, configPath
	defer func() { evalExpr, asyncRun, configPath = oldEval, oldAsync, oldConfig }()
	evalExpr, asyncRun, configPath = "", false, ""

	path := filepath.Join(t.TempDir(), "hello.pyr")
	if err := os.WriteFile(path, []byte(`print("hello from a file")`), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", err, output)
	}
	if strings.TrimSpace(output) != "hello from a file" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestRunScriptInlineEval(t *testing.T) {
	oldEval, oldAsync, oldConfig := evalExpr, asyncRun, configPath
	defer func() { evalExpr, asyncRun, configPath = oldEval, oldAsync, oldConfig }()
	evalExpr, asyncRun, configPath = `print(2 ** 10)`, false, ""

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, nil)
	})
	if err != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", err, output)
	}
	if strings.TrimSpace(output) != "1024" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestRunScriptReportsParseErrors(t *testing.T) {
	oldEval, oldAsync, oldConfig := evalExpr, asyncRun, configPath
	defer func() { evalExpr, asyncRun, configPath = oldEval, oldAsync, oldConfig }()
	evalExpr, asyncRun, configPath = `def (:`, false, ""

	_, err := captureStdout(t, func() error {
		return runScript(runCmd, nil)
	})
	if err == nil {
		t.Fatal("expected an error for malformed source")
	}
}

func TestRunScriptWithConfigGlobals(t *testing.T) {
	oldEval, oldAsync, oldConfig := evalExpr, asyncRun, configPath
	defer func() { evalExpr, asyncRun, configPath = oldEval, oldAsync, oldConfig }()

	cfgPath := filepath.Join(t.TempDir(), "pyrite.yaml")
	if err := os.WriteFile(cfgPath, []byte("globals:\n  greeting: hi there\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	evalExpr, asyncRun, configPath = `print(greeting)`, false, cfgPath

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, nil)
	})
	if err != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", err, output)
	}
	if strings.TrimSpace(output) != "hi there" {
		t.Fatalf("unexpected output: %q", output)
	}
}
