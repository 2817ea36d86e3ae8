package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

// User-facing messages shown by the form.
const (
	MsgFetchFailed  = "Failed to fetch submissions. Please try again later."
	MsgSubmitFailed = "Failed to submit the form. Please try again."
	MsgSubmitted    = "Form submitted successfully!"
)

// ErrNothingToSubmit is returned by Submit when the schema renders no fields.
var ErrNothingToSubmit = errors.New("form has no renderable fields")

// FormSession is the state behind one rendered form: field values, field
// errors, the submissions shown next to the form, an error banner and a
// success flag. It is single-owner and not safe for concurrent use.
//
// Only fields of a known kind take part: unknown kinds are never rendered, so
// they are neither validated nor included in the submitted payload.
type FormSession struct {
	schema model.FormSchema
	rules  RuleSet
	svc    *SubmissionService
	logger *slog.Logger

	values      map[string]string
	errors      FieldErrors
	submissions []model.Submission
	banner      string
	success     bool
	attempted   bool
}

// NewFormSession creates a session with every field set to "".
func NewFormSession(schema model.FormSchema, rules RuleSet, svc *SubmissionService, logger *slog.Logger) *FormSession {
	s := &FormSession{
		schema:      schema,
		rules:       rules,
		svc:         svc,
		logger:      logger,
		submissions: []model.Submission{},
	}
	s.clear()
	return s
}

func (s *FormSession) clear() {
	s.values = make(map[string]string, len(s.schema.Fields))
	for _, f := range s.schema.Fields {
		if f.Kind.Known() {
			s.values[f.Name] = ""
		}
	}
	s.errors = FieldErrors{}
	s.attempted = false
}

// Mount loads the submission list once. On failure the error banner is set,
// the list is left empty and the error is returned.
func (s *FormSession) Mount(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		s.banner = MsgFetchFailed
		return err
	}
	return nil
}

// Load fills the submission list without touching the banner. A submit
// request loads this way so only the create outcome reaches the banner.
func (s *FormSession) Load(ctx context.Context) error {
	subs, err := s.svc.List(ctx)
	if err != nil {
		s.logger.Error("failed to list submissions", "error", err)
		s.submissions = []model.Submission{}
		return err
	}
	s.submissions = subs
	return nil
}

// Edit sets a field value. After a submit attempt the field is re-validated
// immediately so its message tracks the value. Edits to fields that are not
// rendered are ignored and report false.
func (s *FormSession) Edit(name, value string) bool {
	if _, ok := s.values[name]; !ok {
		return false
	}
	s.values[name] = value

	if s.attempted {
		if msg := s.rules.ValidateField(name, value); msg != "" {
			s.errors[name] = msg
		} else {
			delete(s.errors, name)
		}
	}
	return true
}

// Submit validates every rendered field. Invalid values block the create call
// and FieldErrors is returned. Otherwise one create call is made: on success
// the new submission is prepended, values are cleared and the success flag is
// set; on failure the banner is set, values are kept and a *StoreError is
// returned.
func (s *FormSession) Submit(ctx context.Context) error {
	s.attempted = true
	s.success = false

	errs := s.rules.Validate(s.values)
	for name := range errs {
		if _, rendered := s.values[name]; !rendered {
			delete(errs, name)
		}
	}
	s.errors = errs
	if len(errs) > 0 {
		return errs
	}
	if len(s.values) == 0 {
		return ErrNothingToSubmit
	}

	sub, err := s.svc.CreatePayload(ctx, s.Payload())
	if err != nil {
		s.logger.Error("failed to create submission", "error", err)
		s.banner = MsgSubmitFailed
		return err
	}

	s.submissions = append([]model.Submission{sub}, s.submissions...)
	s.clear()
	s.success = true
	s.logger.Info("submission created", "id", sub.ID)
	return nil
}

// Reset clears every value and error.
func (s *FormSession) Reset() {
	s.clear()
}

// DismissError clears the error banner.
func (s *FormSession) DismissError() {
	s.banner = ""
}

// Payload returns the current values of the rendered fields in schema order.
func (s *FormSession) Payload() model.Payload {
	var p model.Payload
	for _, f := range s.schema.Fields {
		if v, ok := s.values[f.Name]; ok {
			p.Set(f.Name, model.StringValue(v))
		}
	}
	return p
}

// Schema returns the schema the session renders.
func (s *FormSession) Schema() model.FormSchema {
	return s.schema
}

// Value returns the current value of a field.
func (s *FormSession) Value(name string) string {
	return s.values[name]
}

// FieldError returns the message shown next to a field, or "".
func (s *FormSession) FieldError(name string) string {
	return s.errors[name]
}

// Errors returns a copy of the current field errors.
func (s *FormSession) Errors() FieldErrors {
	out := make(FieldErrors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Submissions returns the submissions displayed next to the form, newest first.
func (s *FormSession) Submissions() []model.Submission {
	return s.submissions
}

// Banner returns the current error banner, or "".
func (s *FormSession) Banner() string {
	return s.banner
}

// Succeeded reports whether the last submit created a submission.
func (s *FormSession) Succeeded() bool {
	return s.success
}
