// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// Widget names for FieldViewModel.Widget.
const (
	WidgetInput  = "input"
	WidgetSelect = "select"
)

// PageViewModel holds everything the full page renders.
type PageViewModel struct {
	Title           string
	DescriptionHTML string // sanitized HTML, empty when the schema has no description
	Form            FormViewModel
	Table           TableViewModel
}

// FormViewModel holds presentation-ready data for the form card.
type FormViewModel struct {
	Title      string
	Fields     []FieldViewModel
	CSRFToken  string
	ErrorText  string // dismissible banner text, empty when no error
	SuccessMsg string // shown after a successful submit, empty otherwise
}

// FieldViewModel holds presentation-ready data for one input widget.
type FieldViewModel struct {
	Name      string
	ID        string
	HelpID    string
	Label     string
	Widget    string // WidgetInput or WidgetSelect
	InputType string // HTML input type; empty for selects
	Value     string
	Error     string // helper text shown when Invalid
	Invalid   bool
	Required  bool
	Options   []OptionViewModel // selects only; the first entry is the placeholder
}

// OptionViewModel is one entry of a select widget.
type OptionViewModel struct {
	Value    string
	Label    string
	Disabled bool
	Selected bool
}

// TableViewModel holds presentation-ready data for the submissions table.
type TableViewModel struct {
	Heading   string
	Columns   []string
	Rows      []RowViewModel
	EmptyText string
}

// RowViewModel is one submission row.
type RowViewModel struct {
	ID        string
	Cells     []string
	Malformed bool
	Title     string // tooltip; carries the raw stored data for malformed rows
}
