package web

import (
	vm "github.com/ericfisherdev/formpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/formpanel/internal/application"
	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

const (
	submissionsHeading = "Past Submissions"
	noSubmissionsText  = "No submissions yet."
)

// toFieldViewModel maps a field descriptor and its current state to a widget.
// Text, email and password become inputs of that type, date becomes a date
// input, and select becomes a select whose first option is a disabled
// placeholder carrying the label. Unknown kinds report false and render
// nothing.
func toFieldViewModel(f model.FieldDescriptor, value, errMsg string) (vm.FieldViewModel, bool) {
	field := vm.FieldViewModel{
		Name:     f.Name,
		ID:       "field-" + f.Name,
		HelpID:   "field-" + f.Name + "-help",
		Label:    f.Label,
		Value:    value,
		Error:    errMsg,
		Invalid:  errMsg != "",
		Required: f.Required,
	}

	switch f.Kind {
	case model.FieldKindText, model.FieldKindEmail, model.FieldKindPassword, model.FieldKindDate:
		field.Widget = vm.WidgetInput
		field.InputType = string(f.Kind)
	case model.FieldKindSelect:
		field.Widget = vm.WidgetSelect
		field.Options = make([]vm.OptionViewModel, 0, len(f.Options)+1)
		field.Options = append(field.Options, vm.OptionViewModel{
			Value:    "",
			Label:    f.Label,
			Disabled: true,
			Selected: value == "",
		})
		for _, opt := range f.Options {
			field.Options = append(field.Options, vm.OptionViewModel{
				Value:    opt,
				Label:    opt,
				Selected: opt == value,
			})
		}
	default:
		return vm.FieldViewModel{}, false
	}

	return field, true
}

// toFormViewModel converts the session state into the form card view model.
func toFormViewModel(s *application.FormSession, csrfToken string) vm.FormViewModel {
	schema := s.Schema()
	form := vm.FormViewModel{
		Title:     schema.Title,
		Fields:    make([]vm.FieldViewModel, 0, len(schema.Fields)),
		CSRFToken: csrfToken,
		ErrorText: s.Banner(),
	}
	if s.Succeeded() {
		form.SuccessMsg = application.MsgSubmitted
	}

	for _, f := range schema.Fields {
		if field, ok := toFieldViewModel(f, s.Value(f.Name), s.FieldError(f.Name)); ok {
			form.Fields = append(form.Fields, field)
		}
	}
	return form
}

// toTableViewModel converts a built submissions table into its view model.
func toTableViewModel(t application.SubmissionTable) vm.TableViewModel {
	table := vm.TableViewModel{
		Heading:   submissionsHeading,
		EmptyText: noSubmissionsText,
	}
	if t.Empty() {
		return table
	}

	table.Columns = t.Columns
	table.Rows = make([]vm.RowViewModel, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := vm.RowViewModel{
			ID:        r.ID,
			Cells:     r.Cells,
			Malformed: r.Malformed,
		}
		if r.Malformed {
			row.Title = r.Raw
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// toPageViewModel assembles the full page from the session. descriptionHTML
// is the already rendered schema description.
func toPageViewModel(s *application.FormSession, descriptionHTML string, format application.DateTimeFormatter, csrfToken string) vm.PageViewModel {
	schema := s.Schema()
	return vm.PageViewModel{
		Title:           schema.Title,
		DescriptionHTML: descriptionHTML,
		Form:            toFormViewModel(s, csrfToken),
		Table:           toTableViewModel(application.BuildSubmissionTable(s.Submissions(), format)),
	}
}
