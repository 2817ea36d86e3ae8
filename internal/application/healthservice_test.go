package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err   error
	calls int
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return f.err
}

func TestHealthService_Check(t *testing.T) {
	checkedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	tests := []struct {
		name     string
		pingErr  error
		wantStat HealthStatus
	}{
		{name: "database reachable", wantStat: HealthOK},
		{name: "database down", pingErr: errStoreDown, wantStat: HealthDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinger := &fakePinger{err: tt.pingErr}
			svc := NewHealthService(pinger)
			svc.now = func() time.Time { return checkedAt }

			report := svc.Check(context.Background())

			require.Equal(t, 1, pinger.calls)
			assert.Equal(t, tt.wantStat, report.Status)
			assert.Equal(t, tt.wantStat, report.Database)
			assert.Equal(t, checkedAt.UTC(), report.CheckedAt)
			assert.ErrorIs(t, report.Err, tt.pingErr)
		})
	}
}
