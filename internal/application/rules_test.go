package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

func TestBuildRuleSet_RulesPerField(t *testing.T) {
	rs := BuildRuleSet([]model.FieldDescriptor{
		{Name: "name", Label: "Name", Kind: model.FieldKindText, Required: true, MinLength: 3},
		{Name: "email", Label: "Email", Kind: model.FieldKindEmail},
		{Name: "notes", Label: "Notes", Kind: model.FieldKindText},
	})

	require.Len(t, rs.Fields(), 3)

	nameRules, ok := rs.Rules("name")
	require.True(t, ok)
	assert.Equal(t, []Rule{
		{Tag: "required", Message: "Name is required"},
		{Tag: "min=3", Message: "Name must be at least 3 characters"},
	}, nameRules)

	emailRules, ok := rs.Rules("email")
	require.True(t, ok)
	assert.Equal(t, []Rule{{Tag: "omitempty,email", Message: "Email must be a valid email"}}, emailRules)

	notesRules, ok := rs.Rules("notes")
	require.True(t, ok)
	assert.Empty(t, notesRules)

	_, ok = rs.Rules("missing")
	assert.False(t, ok)
}

func TestRuleSet_ValidateField(t *testing.T) {
	rs := BuildRuleSet([]model.FieldDescriptor{
		{Name: "name", Label: "Full Name", Kind: model.FieldKindText, Required: true, MinLength: 3},
		{Name: "email", Label: "Email", Kind: model.FieldKindEmail, Required: true},
		{Name: "optionalEmail", Label: "Backup Email", Kind: model.FieldKindEmail},
		{Name: "nick", Label: "Nickname", Kind: model.FieldKindText, MinLength: 2},
		{Name: "pin", Label: "PIN", Kind: model.FieldKindPassword, MinLength: 4},
	})

	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{name: "required empty", field: "name", value: "", want: "Full Name is required"},
		{name: "too short", field: "name", value: "Al", want: "Full Name must be at least 3 characters"},
		{name: "exactly min", field: "name", value: "Ada", want: ""},
		{name: "longer than min", field: "name", value: "Ada Lovelace", want: ""},
		{name: "min counts characters not bytes", field: "name", value: "Zoë", want: ""},
		{name: "email required empty", field: "email", value: "", want: "Email is required"},
		{name: "email invalid", field: "email", value: "not-an-email", want: "Email must be a valid email"},
		{name: "email valid", field: "email", value: "ada@example.com", want: ""},
		{name: "optional email empty passes", field: "optionalEmail", value: "", want: ""},
		{name: "optional email invalid", field: "optionalEmail", value: "ada@", want: "Backup Email must be a valid email"},
		{name: "optional min still applies", field: "nick", value: "", want: "Nickname must be at least 2 characters"},
		{name: "password min", field: "pin", value: "123", want: "PIN must be at least 4 characters"},
		{name: "unknown field passes", field: "other", value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.ValidateField(tt.field, tt.value))
		})
	}
}

func TestRuleSet_ValidateRequiredForEveryLabel(t *testing.T) {
	labels := []string{"Name", "Date of Birth", "Role", "E-mail address"}
	kinds := []model.FieldKind{model.FieldKindText, model.FieldKindDate, model.FieldKindSelect, model.FieldKindEmail}

	for i, label := range labels {
		field := model.FieldDescriptor{Name: "f", Label: label, Kind: kinds[i], Required: true}
		rs := BuildRuleSet([]model.FieldDescriptor{field})

		errs := rs.Validate(map[string]string{"f": ""})
		assert.Equal(t, FieldErrors{"f": label + " is required"}, errs)
	}
}

func TestRuleSet_ValidateMinLengthBoundary(t *testing.T) {
	for n := 1; n <= 6; n++ {
		rs := BuildRuleSet([]model.FieldDescriptor{{Name: "f", Label: "Code", Kind: model.FieldKindText, MinLength: n}})

		short := rs.Validate(map[string]string{"f": strings.Repeat("x", n-1)})
		assert.Len(t, short, 1, "length %d must fail min %d", n-1, n)

		exact := rs.Validate(map[string]string{"f": strings.Repeat("x", n)})
		assert.Empty(t, exact, "length %d must pass min %d", n, n)
	}
}

func TestRuleSet_ValidateAll(t *testing.T) {
	rs := BuildRuleSet([]model.FieldDescriptor{
		{Name: "name", Label: "Name", Kind: model.FieldKindText, Required: true},
		{Name: "email", Label: "Email", Kind: model.FieldKindEmail, Required: true},
	})

	errs := rs.Validate(map[string]string{"name": "Ada", "email": "bad"})
	assert.Equal(t, FieldErrors{"email": "Email must be a valid email"}, errs)

	errs = rs.Validate(map[string]string{})
	assert.Len(t, errs, 2)
	assert.Equal(t, "validation failed: Email is required; Name is required", errs.Error())

	assert.Empty(t, rs.Validate(map[string]string{"name": "Ada", "email": "ada@example.com"}))
}

func TestRuleSet_SelectMembership(t *testing.T) {
	rs := BuildRuleSet([]model.FieldDescriptor{
		{Name: "role", Label: "Role", Kind: model.FieldKindSelect, Required: true, Options: []string{"Developer", "Designer"}},
		{Name: "city", Label: "City", Kind: model.FieldKindSelect, Options: []string{"New York", "Paris, TX", "A|B"}},
		{Name: "quip", Label: "Quip", Kind: model.FieldKindSelect, Options: []string{"it's fine", "nope"}},
	})

	roleRules, ok := rs.Rules("role")
	require.True(t, ok)
	assert.Equal(t, []Rule{
		{Tag: "required", Message: "Role is required"},
		{Tag: "omitempty,oneof='Developer' 'Designer'", Message: "Role must be one of the listed options"},
	}, roleRules)

	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{name: "listed option", field: "role", value: "Designer", want: ""},
		{name: "unlisted option", field: "role", value: "NotAnOption", want: "Role must be one of the listed options"},
		{name: "case differs", field: "role", value: "developer", want: "Role must be one of the listed options"},
		{name: "required wins over membership", field: "role", value: "", want: "Role is required"},
		{name: "option with space", field: "city", value: "New York", want: ""},
		{name: "half of spaced option", field: "city", value: "New", want: "City must be one of the listed options"},
		{name: "option with comma", field: "city", value: "Paris, TX", want: ""},
		{name: "option with pipe", field: "city", value: "A|B", want: ""},
		{name: "optional select empty passes", field: "city", value: "", want: ""},
		{name: "quoted option", field: "quip", value: "it's fine", want: ""},
		{name: "quoted option list rejects others", field: "quip", value: "its fine", want: "Quip must be one of the listed options"},
		{name: "quoted option list allows empty", field: "quip", value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.ValidateField(tt.field, tt.value))
		})
	}
}
