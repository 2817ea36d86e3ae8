// Package httphandler implements the JSON API driving adapter.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/formpanel/internal/application"
	"github.com/ericfisherdev/formpanel/internal/domain/model"
	"github.com/ericfisherdev/formpanel/internal/domain/port/driven"
)

// maxBodyBytes caps the size of a submit request body.
const maxBodyBytes = 1 << 20

// Error messages returned to API clients.
const (
	msgSaveFailed  = "Failed to save submission"
	msgFetchFailed = "Failed to fetch submissions"
)

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	submissions *application.SubmissionService
	health      *application.HealthService
	schema      model.FormSchema
	logger      *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	submissions *application.SubmissionService,
	health *application.HealthService,
	schema model.FormSchema,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		submissions: submissions,
		health:      health,
		schema:      schema,
		logger:      logger,
	}
}

// RegisterAPIRoutes registers the JSON API routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /api/submit", h.Submit)
	mux.HandleFunc("GET /api/submissions", h.ListSubmissions)
	mux.HandleFunc("GET /api/schema", h.Schema)
	mux.HandleFunc("GET /api/health", h.Health)
}

// ApplyMiddleware wraps next with recovery and request logging.
func ApplyMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, next)
	wrapped = loggingMiddleware(logger, wrapped)
	return wrapped
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// Submit stores the "data" member of the request body, which may be any
// JSON value, and returns the stored record.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Data) == 0 {
		writeError(w, http.StatusBadRequest, "missing data")
		return
	}

	sub, err := h.submissions.Create(r.Context(), req.Data)
	if err != nil {
		if errors.Is(err, driven.ErrInvalidPayload) {
			writeError(w, http.StatusBadRequest, "invalid data")
			return
		}
		h.logger.Error("failed to save submission", "error", err)
		writeError(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}

	h.logger.Info("submission created", "id", sub.ID)
	writeJSON(w, http.StatusOK, toSubmissionResponse(sub))
}

// ListSubmissions returns all stored submissions, newest first.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissions.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list submissions", "error", err)
		writeError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	resp := make([]SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, toSubmissionResponse(sub))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Schema returns the form schema the server renders.
func (h *Handler) Schema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toSchemaResponse(h.schema))
}

// Health reports whether the submission database is reachable. A degraded
// database yields 503 so container health probes fail.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != application.HealthOK {
		h.logger.Warn("health check degraded", "error", report.Err)
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:   string(report.Status),
		Database: string(report.Database),
		Time:     report.CheckedAt.Format(time.RFC3339),
	})
}
