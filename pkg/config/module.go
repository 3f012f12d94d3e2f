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
	Y "gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaFile string

//go:embed default.yaml
var DEFAULT []byte

var ErrUnsupportedFile = fmt.Errorf("courtelo config must be .yaml, .yml or .json")

// extract builds a cue value from a YAML or JSON config file.
func extract(ctx *cue.Context, path string) (cue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, err
	}

	var value cue.Value
	switch filepath.Ext(path) {
	case ".json":
		expr, err := J.Extract(path, data)
		if err != nil {
			return cue.Value{}, err
		}
		value = ctx.BuildExpr(expr)
	case ".yaml", ".yml":
		file, err := yaml.Extract(path, data)
		if err != nil {
			return cue.Value{}, err
		}
		value = ctx.BuildFile(file)
	default:
		return cue.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	return value, value.Err()
}

// merge unifies one source into the accumulated config and checks that the
// result still satisfies the schema.
func merge(config cue.Value, value cue.Value, source string) (cue.Value, error) {
	config = config.Unify(value)
	if err := config.Err(); err != nil {
		return config, fmt.Errorf("%s conflicts with the courtelo schema: %v", source, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s is not a valid courtelo config: %v", source, err)
	}

	return config, nil
}

// Process unifies the schema with each config file in order, falling back
// to the embedded defaults when no files are given.
func Process(configPaths []string) (*Config, error) {
	ctx := cuecontext.New()

	config := ctx.CompileString(schemaFile)
	if err := config.Err(); err != nil {
		return nil, fmt.Errorf("courtelo schema does not compile: %v", err)
	}

	if len(configPaths) == 0 {
		file, err := yaml.Extract("<default>", DEFAULT)
		if err != nil {
			return nil, err
		}

		config, err = merge(config, ctx.BuildFile(file), "default config")
		if err != nil {
			return nil, err
		}
	}

	for _, path := range configPaths {
		value, err := extract(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("could not read config %s: %w", path, err)
		}

		config, err = merge(config, value, "config "+path)
		if err != nil {
			return nil, err
		}
	}

	data, err := config.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("config is incomplete: %v", err)
	}

	var result Config
	err = json.Unmarshal(data, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Render writes a configuration back out as YAML that Process accepts.
func Render(config *Config) ([]byte, error) {
	return Y.Marshal(config)
}
