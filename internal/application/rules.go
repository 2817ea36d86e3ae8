package application

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

// Translation keys for rule messages. {0} is the field label, {1} the rule parameter.
const (
	msgKeyRequired  = "required"
	msgKeyEmail     = "email"
	msgKeyMinLength = "min"
	msgKeyOneOf     = "oneof"
)

var (
	// ruleValidator checks single values against validator tags.
	ruleValidator = validator.New()
	enLocale      = en.New()
	uni           = ut.New(enLocale, enLocale)
	// ruleTrans renders rule messages for the en locale.
	ruleTrans, _ = uni.GetTranslator(enLocale.Locale())
)

func init() {
	messages := map[string]string{
		msgKeyRequired:  "{0} is required",
		msgKeyEmail:     "{0} must be a valid email",
		msgKeyMinLength: "{0} must be at least {1} characters",
		msgKeyOneOf:     "{0} must be one of the listed options",
	}
	for key, text := range messages {
		if err := ruleTrans.Add(key, text, true); err != nil {
			panic(fmt.Sprintf("rules: register message %q: %v", key, err))
		}
	}
}

// Rule is a single check on a field value: a validator tag plus the message
// shown when the check fails.
type Rule struct {
	Tag     string
	Message string

	// allowed replaces the tag check with a membership test for option
	// lists the oneof tag cannot encode.
	allowed []string
}

// FieldRules is the ordered rule list derived for one field.
type FieldRules struct {
	Field model.FieldDescriptor
	Rules []Rule
}

// FieldErrors maps field names to the first failing rule's message.
// It implements error so a blocked submit can return it directly.
type FieldErrors map[string]string

// Error lists the messages ordered by field name.
func (e FieldErrors) Error() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, e[name])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// RuleSet holds the rules for every field of a schema, in schema order.
type RuleSet struct {
	fields []FieldRules
	index  map[string]int
}

// BuildRuleSet derives a RuleSet from the schema fields. Every value is a
// string; on top of that a required field must be non-empty, an email field
// must hold a valid address when non-empty, a select field must hold one of
// its options when non-empty, and a field with a minimum length must have at
// least that many characters. Rules are checked in that order and the first
// failure wins.
func BuildRuleSet(fields []model.FieldDescriptor) RuleSet {
	rs := RuleSet{
		fields: make([]FieldRules, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		fr := FieldRules{Field: f}

		if f.Required {
			fr.Rules = append(fr.Rules, Rule{
				Tag:     "required",
				Message: translate(msgKeyRequired, f.Label),
			})
		}
		if f.Kind == model.FieldKindEmail {
			fr.Rules = append(fr.Rules, Rule{
				Tag:     "omitempty,email",
				Message: translate(msgKeyEmail, f.Label),
			})
		}
		if f.Kind == model.FieldKindSelect && len(f.Options) > 0 {
			fr.Rules = append(fr.Rules, optionRule(f))
		}
		if f.MinLength > 0 {
			n := strconv.Itoa(f.MinLength)
			fr.Rules = append(fr.Rules, Rule{
				Tag:     "min=" + n,
				Message: translate(msgKeyMinLength, f.Label, n),
			})
		}

		rs.index[f.Name] = len(rs.fields)
		rs.fields = append(rs.fields, fr)
	}

	return rs
}

// optionRule restricts a select field to its declared options. Options are
// single-quoted so values with spaces survive oneof's parameter split, and the
// tag separators are written in the hex form validator decodes.
func optionRule(f model.FieldDescriptor) Rule {
	msg := translate(msgKeyOneOf, f.Label)
	if tag, ok := oneofTag(f.Options); ok {
		return Rule{Tag: tag, Message: msg}
	}
	return Rule{Tag: msgKeyOneOf, Message: msg, allowed: slices.Clone(f.Options)}
}

var tagEscaper = strings.NewReplacer(",", "0x2C", "|", "0x7C")

func oneofTag(options []string) (string, bool) {
	quoted := make([]string, 0, len(options))
	for _, opt := range options {
		if strings.Contains(opt, "'") || strings.Contains(opt, "0x2C") || strings.Contains(opt, "0x7C") {
			return "", false
		}
		quoted = append(quoted, "'"+tagEscaper.Replace(opt)+"'")
	}
	return "omitempty,oneof=" + strings.Join(quoted, " "), true
}

func translate(key string, params ...string) string {
	msg, err := ruleTrans.T(key, params...)
	if err != nil {
		// Only reachable if a key is missing from init.
		return fmt.Sprintf("%s: %s", strings.Join(params, " "), key)
	}
	return msg
}

// Fields returns the per-field rules in schema order.
func (rs RuleSet) Fields() []FieldRules {
	return rs.fields
}

// Rules returns the rules for the named field.
func (rs RuleSet) Rules(name string) ([]Rule, bool) {
	i, ok := rs.index[name]
	if !ok {
		return nil, false
	}
	return rs.fields[i].Rules, true
}

// ValidateField checks value against the named field's rules and returns the
// first failing message, or "" when the value passes. Unknown fields pass.
func (rs RuleSet) ValidateField(name, value string) string {
	rules, ok := rs.Rules(name)
	if !ok {
		return ""
	}
	for _, rule := range rules {
		if rule.allowed != nil {
			if value != "" && !slices.Contains(rule.allowed, value) {
				return rule.Message
			}
			continue
		}
		if err := ruleValidator.Var(value, rule.Tag); err != nil {
			return rule.Message
		}
	}
	return ""
}

// Validate checks every field and returns the failures. Missing values are
// treated as empty strings. An empty result means the values are valid.
func (rs RuleSet) Validate(values map[string]string) FieldErrors {
	errs := FieldErrors{}
	for _, fr := range rs.fields {
		if msg := rs.ValidateField(fr.Field.Name, values[fr.Field.Name]); msg != "" {
			errs[fr.Field.Name] = msg
		}
	}
	return errs
}
