package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyrite.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
globals:
  answer: 42
  name: pyrite
max_recursion_depth: 500
allow_input: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxRecursionDepth != 500 {
		t.Errorf("expected max_recursion_depth 500, got %d", cfg.MaxRecursionDepth)
	}
	if !cfg.AllowInput {
		t.Errorf("expected allow_input true")
	}
	if cfg.Globals["name"] != "pyrite" {
		t.Errorf("expected globals.name == pyrite, got %v", cfg.Globals["name"])
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := writeConfig(t, `
globals: {}
not_a_real_field: true
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected a schema validation error for an unknown field")
	}
}

func TestLoadRejectsNegativeRecursionDepth(t *testing.T) {
	path := writeConfig(t, `
max_recursion_depth: -1
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected a schema validation error for a non-positive max_recursion_depth")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "globals: [this is not: a map")

	if _, err := Load(path); err == nil {
		t.Fatal("expected a YAML parse error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
