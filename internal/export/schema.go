package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/pbi/internal/catalog"
)

// schemaCache caches compiled record schemas keyed by column set.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidateRecord checks a record against the fixed column schema: every
// column present, profile values drawn from their option codes, responses
// on the Likert scale. Nulls are allowed everywhere.
func ValidateRecord(cat *catalog.Catalog, rec Record) error {
	compiled, err := recordSchema(cat)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse record: %w", err)
	}

	if err := compiled.Validate(inst); err != nil {
		return fmt.Errorf("record validation failed: %w", err)
	}
	return nil
}

// recordSchema returns a cached compiled schema or compiles and caches it.
func recordSchema(cat *catalog.Catalog) (*jsonschema.Schema, error) {
	headers := Headers(cat)
	key := strings.Join(headers, ",")
	if cached, ok := schemaCache.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// Round-trip through JSON so the compiler sees plain JSON values.
	defBytes, err := json.Marshal(schemaDefinition(cat))
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://export-record.json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(key, compiled)
	return compiled, nil
}

func schemaDefinition(cat *catalog.Catalog) map[string]any {
	props := make(map[string]any)
	for _, f := range profileColumns {
		enum := []any{nil}
		for _, o := range f.Options() {
			enum = append(enum, o.Value)
		}
		props[f.Column()] = map[string]any{"enum": enum}
	}
	for _, code := range cat.Codes() {
		props[code] = map[string]any{
			"type":    []string{"integer", "null"},
			"minimum": catalog.LikertMin,
			"maximum": catalog.LikertMax,
		}
	}

	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"properties":           props,
		"required":             Headers(cat),
		"additionalProperties": false,
	}
}
