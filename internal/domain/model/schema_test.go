package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormSchema_Validate(t *testing.T) {
	tests := []struct {
		name    string
		schema  FormSchema
		wantErr string
	}{
		{
			name: "valid",
			schema: FormSchema{Title: "Contact", Fields: []FieldDescriptor{
				{Name: "name", Label: "Name", Kind: FieldKindText, Required: true, MinLength: 3},
				{Name: "role", Label: "Role", Kind: FieldKindSelect, Options: []string{"A", "B"}},
			}},
		},
		{
			name:    "missing title",
			schema:  FormSchema{},
			wantErr: "title is empty",
		},
		{
			name: "duplicate names",
			schema: FormSchema{Title: "T", Fields: []FieldDescriptor{
				{Name: "a", Kind: FieldKindText},
				{Name: "a", Kind: FieldKindEmail},
			}},
			wantErr: `duplicate field name "a"`,
		},
		{
			name: "select without options",
			schema: FormSchema{Title: "T", Fields: []FieldDescriptor{
				{Name: "role", Kind: FieldKindSelect},
			}},
			wantErr: `select field "role" has no options`,
		},
		{
			name: "negative min length",
			schema: FormSchema{Title: "T", Fields: []FieldDescriptor{
				{Name: "a", Kind: FieldKindText, MinLength: -1},
			}},
			wantErr: "negative minLength",
		},
		{
			name: "unknown kind is allowed",
			schema: FormSchema{Title: "T", Fields: []FieldDescriptor{
				{Name: "color", Kind: FieldKind("color")},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidSchema)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFieldKind_Known(t *testing.T) {
	assert.True(t, FieldKindDate.Known())
	assert.False(t, FieldKind("checkbox").Known())
}
