package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

// isoTimestamp matches JavaScript's Date.prototype.toISOString.
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// SubmitRequest is the JSON body for the submit endpoint.
type SubmitRequest struct {
	Data json.RawMessage `json:"data"`
}

// SubmissionResponse is the JSON representation of a stored submission.
// Data is the serialized payload as a string, not a nested object.
type SubmissionResponse struct {
	ID        string `json:"id"`
	Data      string `json:"data"`
	CreatedAt string `json:"createdAt"`
}

// FieldResponse is the JSON representation of one schema field.
type FieldResponse struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Type      string   `json:"type"`
	Required  bool     `json:"required"`
	MinLength int      `json:"minLength,omitempty"`
	Options   []string `json:"options,omitempty"`
}

// SchemaResponse is the JSON representation of the form schema.
type SchemaResponse struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Fields      []FieldResponse `json:"fields"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     string `json:"time"`
}

// toSubmissionResponse converts a domain Submission to its JSON representation.
func toSubmissionResponse(sub model.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:        sub.ID,
		Data:      sub.Data,
		CreatedAt: sub.CreatedAt.UTC().Format(isoTimestamp),
	}
}

// toSchemaResponse converts the domain FormSchema to its JSON representation.
func toSchemaResponse(s model.FormSchema) SchemaResponse {
	fields := make([]FieldResponse, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, FieldResponse{
			Name:      f.Name,
			Label:     f.Label,
			Type:      string(f.Kind),
			Required:  f.Required,
			MinLength: f.MinLength,
			Options:   f.Options,
		})
	}
	return SchemaResponse{
		Title:       s.Title,
		Description: s.Description,
		Fields:      fields,
	}
}
