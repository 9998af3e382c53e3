package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	J "cuelang.org/go/encoding/json"
	"cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaFile string

//go:embed default.yaml
var DEFAULT []byte

// ENV_VAR lists configuration files to use when none are given explicitly.
const ENV_VAR = "MULTIELO_CONFIG"

func buildYAML(ctx *cue.Context, name string, data []byte) (*cue.Value, error) {
	yamlFile, err := yaml.Extract(name, data)
	if err != nil {
		return nil, err
	}

	value := ctx.BuildFile(yamlFile)
	if err := value.Err(); err != nil {
		return nil, err
	}

	return &value, nil
}

func readFile(ctx *cue.Context, path string) (*cue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read: %w", err)
	}

	switch filepath.Ext(path) {
	case ".json":
		dataExpr, err := J.Extract(path, data)
		if err != nil {
			return nil, err
		}

		value := ctx.BuildExpr(dataExpr)
		if err := value.Err(); err != nil {
			return nil, err
		}

		return &value, nil
	case ".yaml", ".yml":
		return buildYAML(ctx, path, data)
	}

	return nil, fmt.Errorf("not in a valid format")
}

// Paths returns configPaths, or the files listed in MULTIELO_CONFIG when
// configPaths is empty.
func Paths(configPaths []string) []string {
	if len(configPaths) > 0 {
		return configPaths
	}

	env := os.Getenv(ENV_VAR)
	if env == "" {
		return nil
	}

	return filepath.SplitList(env)
}

// Process reads the provided configuration files in order, unifies them with
// the configuration schema and validates the result. If no configuration
// files are provided, the default configuration is used.
func Process(configPaths []string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaFile)
	if err := schema.Err(); err != nil {
		return nil, err
	}

	if len(configPaths) == 0 {
		value, err := buildYAML(ctx, "<default>", DEFAULT)
		if err != nil {
			return nil, err
		}

		schema = schema.Unify(*value)
		if err := schema.Err(); err != nil {
			return nil, fmt.Errorf("invalid default config file: %w", err)
		}
	}

	for _, path := range configPaths {
		value, err := readFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("could not process config file %s: %w", path, err)
		}

		schema = schema.Unify(*value)
		if err := schema.Err(); err != nil {
			return nil, fmt.Errorf("could not merge config file %s: %w", path, err)
		}

		if err := schema.Validate(); err != nil {
			return nil, fmt.Errorf("config file %s is not valid: %w", path, err)
		}
	}

	if err := schema.Validate(); err != nil {
		return nil, err
	}

	data, err := schema.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("could not aggregate config: %w", err)
	}

	config := Config{}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
