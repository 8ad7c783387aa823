package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidDataset is returned when a dataset is not valid JSON, fails
// schema validation or repeats an id.
var ErrInvalidDataset = errors.New("invalid property dataset")

//go:embed data/properties.json data/properties.schema.json
var dataFS embed.FS

const schemaResource = "properties.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := dataFS.ReadFile("data/properties.schema.json")
		if err != nil {
			schemaErr = fmt.Errorf("read dataset schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaResource, bytes.NewReader(raw)); err != nil {
			schemaErr = fmt.Errorf("add dataset schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaResource)
	})
	return schema, schemaErr
}

// LoadDataset decodes a JSON array of properties and validates it.
func LoadDataset(r io.Reader) ([]Property, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	var props []Property
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	seen := make(map[string]struct{}, len(props))
	for _, p := range props {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDataset, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return props, nil
}

// Default returns the embedded dataset.
func Default() ([]Property, error) {
	f, err := dataFS.Open("data/properties.json")
	if err != nil {
		return nil, fmt.Errorf("open embedded dataset: %w", err)
	}
	defer f.Close()

	return LoadDataset(f)
}
