// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/formpanel/internal/adapter/driving/web/templates/components"
	"github.com/ericfisherdev/formpanel/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/formpanel/internal/application"
	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	schema      model.FormSchema
	description string
	rules       application.RuleSet
	submissions *application.SubmissionService
	format      application.DateTimeFormatter
	logger      *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. The rule set
// and the rendered description are derived from the schema once, here.
func NewHandler(
	schema model.FormSchema,
	submissions *application.SubmissionService,
	format application.DateTimeFormatter,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		schema:      schema,
		description: RenderDescription(schema.Description),
		rules:       application.BuildRuleSet(schema.Fields),
		submissions: submissions,
		format:      format,
		logger:      logger,
	}
}

func (h *Handler) newSession() *application.FormSession {
	return application.NewFormSession(h.schema, h.rules, h.submissions, h.logger)
}

// FormPage renders the full page: the empty form and the stored submissions.
func (h *Handler) FormPage(w http.ResponseWriter, r *http.Request) {
	token := csrfToken(w, r)

	session := h.newSession()
	// A failed list is shown as a banner; the page still renders.
	_ = session.Mount(r.Context())

	h.render(w, r, http.StatusOK, pages.FormPage(toPageViewModel(session, h.description, h.format, token)))
}

// Submit validates the posted values and, when valid, stores them. HTMX
// requests get the workspace fragment back so the new submission appears
// without a page reload; plain form posts get the full page.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}
	token := csrfToken(w, r)

	// Each request rebuilds the session, so the table is re-read here. A failed
	// read only empties the table; the banner reports the create outcome.
	session := h.newSession()
	_ = session.Load(r.Context())
	for _, f := range h.schema.Fields {
		session.Edit(f.Name, r.PostFormValue(f.Name))
	}

	if err := session.Submit(r.Context()); err != nil {
		h.logger.Debug("submit not completed", "error", err)
	}

	page := toPageViewModel(session, h.description, h.format, token)
	if isHTMX(r) {
		h.render(w, r, http.StatusOK, components.Workspace(page))
		return
	}
	h.render(w, r, http.StatusOK, pages.FormPage(page))
}

// Reset returns an empty form card. Plain form posts are redirected home.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}
	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session := h.newSession()
	session.Reset()
	h.render(w, r, http.StatusOK, components.Form(toFormViewModel(session, csrfToken(w, r))))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
