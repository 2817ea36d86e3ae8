package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Submission is one stored, immutable set of form answers. Data holds the
// serialized JSON payload exactly as it was persisted.
type Submission struct {
	ID        string
	Data      string
	CreatedAt time.Time
}

// Payload decodes Data into an ordered Payload.
func (s Submission) Payload() (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(s.Data), &p); err != nil {
		return Payload{}, fmt.Errorf("decode payload of submission %s: %w", s.ID, err)
	}
	return p, nil
}
