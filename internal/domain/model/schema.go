// Package model holds the form schema and submission types shared by every layer.
package model

import (
	"errors"
	"fmt"
)

// FieldDescriptor is the static metadata for one form input.
type FieldDescriptor struct {
	Name      string    `json:"name" yaml:"name"`
	Label     string    `json:"label" yaml:"label"`
	Kind      FieldKind `json:"type" yaml:"type"`
	Required  bool      `json:"required" yaml:"required"`
	MinLength int       `json:"minLength,omitempty" yaml:"minLength,omitempty"` // 0 means no minimum
	Options   []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// FormSchema describes a form: its title, an optional markdown description,
// and the ordered fields that define both render order and validation.
type FormSchema struct {
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldDescriptor `json:"fields" yaml:"fields"`
}

// ErrInvalidSchema is wrapped by every error returned from FormSchema.Validate.
var ErrInvalidSchema = errors.New("invalid form schema")

// Validate checks the structural invariants of the schema: a title, unique
// non-empty field names, non-negative minimum lengths, and options on every
// select field.
func (s FormSchema) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("%w: title is empty", ErrInvalidSchema)
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidSchema, i)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field name %q", ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = struct{}{}

		if f.MinLength < 0 {
			return fmt.Errorf("%w: field %q has negative minLength %d", ErrInvalidSchema, f.Name, f.MinLength)
		}
		if f.Kind == FieldKindSelect && len(f.Options) == 0 {
			return fmt.Errorf("%w: select field %q has no options", ErrInvalidSchema, f.Name)
		}
	}

	return nil
}

// Field returns the descriptor with the given name.
func (s FormSchema) Field(name string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}
