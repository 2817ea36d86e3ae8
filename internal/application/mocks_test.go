package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

var errStoreDown = errors.New("store unavailable")

// fakeSubmissionStore keeps submissions in memory, newest first, and counts calls.
type fakeSubmissionStore struct {
	subs      []model.Submission
	createErr error
	listErr   error
	now       time.Time
	seq       int

	createCalls int
	listCalls   int
	lastData    string
}

func (f *fakeSubmissionStore) Create(_ context.Context, data json.RawMessage) (model.Submission, error) {
	f.createCalls++
	f.lastData = string(data)
	if f.createErr != nil {
		return model.Submission{}, f.createErr
	}
	f.seq++
	sub := model.Submission{
		ID:        "sub-" + string(rune('a'+f.seq-1)),
		Data:      string(data),
		CreatedAt: f.now.Add(time.Duration(f.seq) * time.Minute),
	}
	f.subs = append([]model.Submission{sub}, f.subs...)
	return sub, nil
}

func (f *fakeSubmissionStore) List(_ context.Context) ([]model.Submission, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Submission, len(f.subs))
	copy(out, f.subs)
	return out, nil
}

// utcFormatter renders timestamps as RFC3339 so assertions stay locale-free.
type utcFormatter struct{}

func (utcFormatter) FormatDateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
