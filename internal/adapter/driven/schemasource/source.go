// Package schemasource implements the SchemaSource port for the embedded
// default schema, local JSON/YAML files, and remote schema documents.
package schemasource

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
	"github.com/ericfisherdev/formpanel/internal/domain/port/driven"
)

//go:embed default.yaml
var defaultSchema []byte

// Compile-time interface satisfaction checks.
var (
	_ driven.SchemaSource = Embedded{}
	_ driven.SchemaSource = (*File)(nil)
	_ driven.SchemaSource = (*Remote)(nil)
)

// New picks a source for location: empty selects the embedded default,
// an http or https URL selects Remote, anything else is a file path.
func New(location string) driven.SchemaSource {
	switch {
	case location == "":
		return Embedded{}
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewRemote(location)
	default:
		return NewFile(location)
	}
}

// Embedded serves the schema compiled into the binary.
type Embedded struct{}

// Load decodes the embedded default schema.
func (Embedded) Load(_ context.Context) (model.FormSchema, error) {
	return Decode(defaultSchema)
}

// File loads a schema from a JSON or YAML file on disk.
type File struct {
	path string
}

// NewFile creates a File source for path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads and decodes the file. The extension picks the decoder when it is
// .json, .yaml or .yml; otherwise the content is sniffed.
func (f *File) Load(_ context.Context) (model.FormSchema, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("read schema file: %w", err)
	}

	var schema model.FormSchema
	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".json":
		schema, err = decodeJSON(data)
	case ".yaml", ".yml":
		schema, err = decodeYAML(data)
	default:
		return Decode(data)
	}
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("decode schema file %s: %w", f.path, err)
	}
	return validated(schema)
}

// Decode parses a schema document and validates it. Documents whose first
// non-blank byte is '{' are read as JSON, everything else as YAML.
func Decode(data []byte) (model.FormSchema, error) {
	var (
		schema model.FormSchema
		err    error
	)
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		schema, err = decodeJSON(data)
	} else {
		schema, err = decodeYAML(data)
	}
	if err != nil {
		return model.FormSchema{}, err
	}
	return validated(schema)
}

func decodeJSON(data []byte) (model.FormSchema, error) {
	var schema model.FormSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return model.FormSchema{}, fmt.Errorf("decode JSON schema: %w", err)
	}
	return schema, nil
}

func decodeYAML(data []byte) (model.FormSchema, error) {
	var schema model.FormSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return model.FormSchema{}, fmt.Errorf("decode YAML schema: %w", err)
	}
	return schema, nil
}

func validated(schema model.FormSchema) (model.FormSchema, error) {
	if err := schema.Validate(); err != nil {
		return model.FormSchema{}, err
	}
	return schema, nil
}
