// Package config loads the optional --config document a pyrite CLI
// invocation can use to pre-seed the interpreter's global namespace.
// max_recursion_depth and allow_input are validated and decoded into
// Config, but the CLI applies only globals.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Config is the parsed, schema-validated contents of a --config file.
type Config struct {
	Globals            map[string]any `yaml:"globals" json:"globals"`
	MaxRecursionDepth   int            `yaml:"max_recursion_depth" json:"max_recursion_depth"`
	AllowInput          bool           `yaml:"allow_input" json:"allow_input"`
}

const schemaDoc = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "globals": {"type": "object"},
    "max_recursion_depth": {"type": "integer", "minimum": 1},
    "allow_input": {"type": "boolean"}
  }
}`

// Load reads, YAML-decodes, and schema-validates the config file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: invalid YAML in %s: %w", path, err)
	}

	if err := validate(doc); err != nil {
		return nil, fmt.Errorf("config: %s failed schema validation: %w", path, err)
	}

	var cfg Config
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := json.Unmarshal(normalized, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func validate(doc map[string]any) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	url := "schema://pyrite-config.json"
	if err := compiler.AddResource(url, strings.NewReader(schemaDoc)); err != nil {
		return err
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return err
	}
	// jsonschema validates against decoded JSON values (map[string]any with
	// string keys, float64 numbers); yaml.v3 decodes integers as int, so
	// the document is converted to that shape first.
	return schema.Validate(jsonCompatible(doc))
}

// jsonCompatible round-trips through encoding/json so yaml.v3's
// map[string]any (and any nested map[any]any edge case) matches exactly
// what jsonschema expects to walk.
func jsonCompatible(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
