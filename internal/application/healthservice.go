package application

import (
	"context"
	"time"

	"github.com/ericfisherdev/formpanel/internal/domain/port/driven"
)

// HealthStatus summarizes whether the service can do useful work.
type HealthStatus string

const (
	HealthOK       HealthStatus = "ok"
	HealthDegraded HealthStatus = "degraded"
)

// pingTimeout bounds a single dependency probe.
const pingTimeout = 2 * time.Second

// HealthReport is the outcome of one health check.
type HealthReport struct {
	Status    HealthStatus
	Database  HealthStatus
	CheckedAt time.Time
	// Err is the database probe failure, nil when healthy.
	Err error
}

// HealthService probes the submission database for the health endpoint.
type HealthService struct {
	db  driven.HealthChecker
	now func() time.Time
}

// NewHealthService creates a new HealthService with the required dependencies.
func NewHealthService(db driven.HealthChecker) *HealthService {
	return &HealthService{
		db:  db,
		now: time.Now,
	}
}

// Check pings the database. Any failure marks the whole report degraded.
func (s *HealthService) Check(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	report := HealthReport{
		Status:    HealthOK,
		Database:  HealthOK,
		CheckedAt: s.now().UTC(),
	}
	if err := s.db.Ping(ctx); err != nil {
		report.Status = HealthDegraded
		report.Database = HealthDegraded
		report.Err = err
	}
	return report
}
