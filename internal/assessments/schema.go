package assessments

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// Request schema names.
const (
	SchemaDiagnose  = "diagnose"
	SchemaBatch     = "batch"
	SchemaResponses = "responses"
	SchemaImport    = "import"
)

var schemaNames = []string{"question", SchemaResponses, SchemaDiagnose, SchemaBatch, SchemaImport}

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func schemaURL(name string) string {
	return fmt.Sprintf("schema://assessments/%s.json", name)
}

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	for _, name := range schemaNames {
		raw, err := schemaFiles.ReadFile("schemas/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", name, err)
		}
		if err := c.AddResource(schemaURL(name), doc); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	compiled := make(map[string]*jsonschema.Schema, len(schemaNames))
	for _, name := range schemaNames {
		sch, err := c.Compile(schemaURL(name))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		compiled[name] = sch
	}
	return compiled, nil
}

// ValidatePayload checks a raw request body against the named schema.
// Failures wrap ErrInvalidRequest.
func ValidatePayload(name string, body []byte) error {
	schemasOnce.Do(func() {
		schemas, schemasErr = compileSchemas()
	})
	if schemasErr != nil {
		return schemasErr
	}

	sch, ok := schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", ErrInvalidRequest, err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}
