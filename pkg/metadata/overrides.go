package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// overridesSchema validates a types override file before it is merged into
// the registry. Draft-07 keeps us compatible with gojsonschema.
const overridesSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["types"],
  "additionalProperties": false,
  "properties": {
    "types": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["directory", "name"],
        "additionalProperties": false,
        "properties": {
          "directory": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "suffix": {"type": "string"},
          "meta_file": {"type": "boolean"},
          "in_folder": {"type": "boolean"},
          "bundle": {"type": "boolean"}
        }
      }
    }
  }
}`

type overridesFile struct {
	Types []Type `yaml:"types" toml:"types"`
}

// LoadOverrides reads a types override file (.yaml/.yml or .toml), validates
// it against the overrides schema, and returns the parsed entries.
func LoadOverrides(path string) ([]Type, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var raw interface{}
	var parsed overridesFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported types file format: %s", path)
	}

	if err := validateOverrides(raw); err != nil {
		return nil, fmt.Errorf("invalid types file %s: %w", path, err)
	}
	return parsed.Types, nil
}

func validateOverrides(doc interface{}) error {
	schemaLoader := gojsonschema.NewStringLoader(overridesSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %v", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("validation failed:\n%s", strings.Join(msgs, "\n"))
	}
	return nil
}
