package application

import (
	"time"

	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

const (
	// SubmittedAtColumn is the fixed trailing column of the submissions table.
	SubmittedAtColumn = "Submitted At"
	// EmptyCell is shown for keys a submission does not carry.
	EmptyCell = "-"
)

// DateTimeFormatter renders the creation time of a submission.
type DateTimeFormatter interface {
	FormatDateTime(t time.Time) string
}

// TableRow is one rendered submission. Cells line up with the table columns,
// the last cell being the formatted creation time.
type TableRow struct {
	ID    string
	Cells []string
	// Malformed is set when the stored data could not be decoded as a JSON
	// object. Raw then carries the stored text.
	Malformed bool
	Raw       string
}

// SubmissionTable is the submissions view with columns inferred from the
// payloads.
type SubmissionTable struct {
	Columns []string
	Rows    []TableRow
}

// Empty reports whether there are no submissions to show.
func (t SubmissionTable) Empty() bool {
	return len(t.Rows) == 0
}

// BuildSubmissionTable infers columns as the union of payload keys in
// first-seen order across subs, followed by SubmittedAtColumn, and renders
// one row per submission. A cell holds the payload value when present and
// non-empty, otherwise EmptyCell.
//
// A submission whose data does not decode to a JSON object still gets a row:
// it contributes no columns, every payload cell is EmptyCell and the row is
// flagged Malformed.
func BuildSubmissionTable(subs []model.Submission, format DateTimeFormatter) SubmissionTable {
	payloads := make([]model.Payload, len(subs))
	malformed := make([]bool, len(subs))

	var keys []string
	seen := make(map[string]struct{})
	for i, sub := range subs {
		p, err := sub.Payload()
		if err != nil {
			malformed[i] = true
			continue
		}
		payloads[i] = p
		for _, k := range p.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}

	table := SubmissionTable{
		Columns: append(keys, SubmittedAtColumn),
		Rows:    make([]TableRow, 0, len(subs)),
	}

	for i, sub := range subs {
		row := TableRow{
			ID:        sub.ID,
			Cells:     make([]string, 0, len(table.Columns)),
			Malformed: malformed[i],
		}
		if row.Malformed {
			row.Raw = sub.Data
		}

		for _, k := range keys {
			cell := EmptyCell
			if v, ok := payloads[i].Get(k); ok && v.String() != "" {
				cell = v.String()
			}
			row.Cells = append(row.Cells, cell)
		}
		row.Cells = append(row.Cells, format.FormatDateTime(sub.CreatedAt))

		table.Rows = append(table.Rows, row)
	}

	return table
}
