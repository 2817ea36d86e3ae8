package model

// FieldKind identifies which input widget a field renders as and which
// format rules apply to its value.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindPassword FieldKind = "password"
	FieldKindDate     FieldKind = "date"
	FieldKindSelect   FieldKind = "select"
)

// Known reports whether k is one of the supported kinds. Unknown kinds are
// kept in the schema but are never rendered.
func (k FieldKind) Known() bool {
	switch k {
	case FieldKindText, FieldKindEmail, FieldKindPassword, FieldKindDate, FieldKindSelect:
		return true
	}
	return false
}
