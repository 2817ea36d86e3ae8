// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

// ErrInvalidPayload indicates Create was given bytes that are not valid JSON.
var ErrInvalidPayload = errors.New("payload is not valid JSON")

// SubmissionStore defines the driven port for persisting form submissions.
// Create stores data (any JSON value) in compact serialized form and assigns
// the ID and creation time. List returns every submission, newest first.
type SubmissionStore interface {
	Create(ctx context.Context, data json.RawMessage) (model.Submission, error)
	List(ctx context.Context) ([]model.Submission, error)
}
