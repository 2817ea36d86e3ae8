package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
	"github.com/ericfisherdev/formpanel/internal/domain/port/driven"
)

// Store operation names carried by StoreError.
const (
	OpCreate = "create"
	OpList   = "list"
)

// StoreError reports a failed store operation. Every failure is terminal for
// that attempt; nothing is retried.
type StoreError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s submissions: %v", e.Op, e.Err)
}

// Unwrap returns the underlying store error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// SubmissionService is the create/list gateway between the UI and API
// adapters and the submission store.
type SubmissionService struct {
	store driven.SubmissionStore
}

// NewSubmissionService creates a new SubmissionService with the required dependencies.
func NewSubmissionService(store driven.SubmissionStore) *SubmissionService {
	return &SubmissionService{store: store}
}

// Create persists data, which may be any JSON value.
func (s *SubmissionService) Create(ctx context.Context, data json.RawMessage) (model.Submission, error) {
	sub, err := s.store.Create(ctx, data)
	if err != nil {
		return model.Submission{}, &StoreError{Op: OpCreate, Err: err}
	}
	return sub, nil
}

// CreatePayload serializes payload in key order and persists it.
func (s *SubmissionService) CreatePayload(ctx context.Context, payload model.Payload) (model.Submission, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return model.Submission{}, &StoreError{Op: OpCreate, Err: fmt.Errorf("encode payload: %w", err)}
	}
	return s.Create(ctx, data)
}

// List returns all submissions, newest first.
func (s *SubmissionService) List(ctx context.Context) ([]model.Submission, error) {
	subs, err := s.store.List(ctx)
	if err != nil {
		return nil, &StoreError{Op: OpList, Err: err}
	}
	return subs, nil
}
