package driven

import "context"

// HealthChecker defines the driven port for probing a backing dependency.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
