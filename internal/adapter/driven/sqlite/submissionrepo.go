package sqlite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
	"github.com/ericfisherdev/formpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SubmissionStore = (*SubmissionRepo)(nil)

// createdAtLayout keeps millisecond precision and sorts lexically in time order.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

// SubmissionRepo is the SQLite implementation of the SubmissionStore port interface.
type SubmissionRepo struct {
	db  *DB
	now func() time.Time
}

// NewSubmissionRepo creates a new SubmissionRepo backed by the given DB.
func NewSubmissionRepo(db *DB) *SubmissionRepo {
	return &SubmissionRepo{db: db, now: time.Now}
}

// Create compacts and stores data with a fresh xid and the current UTC time.
// Returns driven.ErrInvalidPayload if data is not valid JSON.
func (r *SubmissionRepo) Create(ctx context.Context, data json.RawMessage) (model.Submission, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return model.Submission{}, fmt.Errorf("create submission: %w", driven.ErrInvalidPayload)
	}

	sub := model.Submission{
		ID:        xid.New().String(),
		Data:      compact.String(),
		CreatedAt: r.now().UTC().Truncate(time.Millisecond),
	}

	const query = `INSERT INTO submissions (id, data, created_at) VALUES (?, ?, ?)`
	if _, err := r.db.Writer.ExecContext(ctx, query, sub.ID, sub.Data, sub.CreatedAt.Format(createdAtLayout)); err != nil {
		return model.Submission{}, fmt.Errorf("insert submission %s: %w", sub.ID, err)
	}

	return sub, nil
}

// List returns all submissions ordered by created_at DESC. Rows sharing a
// timestamp are returned most recently inserted first.
func (r *SubmissionRepo) List(ctx context.Context) ([]model.Submission, error) {
	const query = `SELECT id, data, created_at FROM submissions ORDER BY created_at DESC, rowid DESC`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	result := []model.Submission{}
	for rows.Next() {
		var sub model.Submission
		var createdAt string
		if err := rows.Scan(&sub.ID, &sub.Data, &createdAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		sub.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for submission %s: %w", sub.ID, err)
		}
		result = append(result, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return result, nil
}

// parseTime parses a timestamp string from SQLite into a time.Time.
// Handles the stored layout plus the formats SQLite's own datetime functions emit.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		createdAtLayout,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %q", s)
}
