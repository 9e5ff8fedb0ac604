package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	contentsSchemaName = "educational_contents.schema.json"
	themeSchemaName    = "theme_config.schema.json"
)

var themeConfigSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"headerColor":     map[string]any{"type": "string"},
		"backgroundColor": map[string]any{"type": "string"},
		"textColor":       map[string]any{"type": "string"},
		"fontFamily":      map[string]any{"type": "string"},
		"logo":            map[string]any{"type": "string"},
		"docLink":         map[string]any{"type": "string"},
	},
}

// SchemaValidator compiles JSON schemas once and validates documents against them.
type SchemaValidator struct {
	mu       sync.RWMutex
	sources  map[string][]byte
	compiled map[string]*jsonschema.Schema
}

// NewSchemaValidator builds a validator preloaded with the catalog schemas.
func NewSchemaValidator() *SchemaValidator {
	v := &SchemaValidator{
		sources:  map[string][]byte{},
		compiled: map[string]*jsonschema.Schema{},
	}
	if data, err := embeddedContents.ReadFile("data/" + contentsSchemaName); err == nil {
		v.sources[contentsSchemaName] = data
	}
	if data, err := json.Marshal(themeConfigSchema); err == nil {
		v.sources[themeSchemaName] = data
	}
	return v
}

var sharedValidator = NewSchemaValidator()

// ValidateContents checks a raw educational contents document.
func ValidateContents(data []byte) error {
	return sharedValidator.ValidateJSON(contentsSchemaName, data)
}

// ValidateThemeConfig checks a theme config against its schema.
func ValidateThemeConfig(cfg ThemeConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("catalog: marshal theme config: %w", err)
	}
	return sharedValidator.ValidateJSON(themeSchemaName, data)
}

// DecodeThemeConfig validates a raw custom style document and decodes it.
// Unknown keys are rejected.
func DecodeThemeConfig(data []byte) (ThemeConfig, error) {
	var cfg ThemeConfig
	if err := sharedValidator.ValidateJSON(themeSchemaName, data); err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("catalog: decode theme config: %w", err)
	}
	return cfg, nil
}

// ValidateJSON validates a raw JSON document against the named schema.
func (v *SchemaValidator) ValidateJSON(name string, data []byte) error {
	schema, err := v.schemaFor(name)
	if err != nil {
		return err
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("catalog: parse document for %s: %w", name, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("catalog: document failed %s validation: %w", name, err)
	}
	return nil
}

func (v *SchemaValidator) schemaFor(name string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[name]
	source, known := v.sources[name]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	if !known {
		return nil, fmt.Errorf("catalog: unknown schema %s", name)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(source)); err != nil {
		return nil, fmt.Errorf("catalog: load schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("catalog: compile schema %s: %w", name, err)
	}
	v.mu.Lock()
	v.compiled[name] = compiled
	v.mu.Unlock()
	return compiled, nil
}
