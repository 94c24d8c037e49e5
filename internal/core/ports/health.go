package ports

import "context"

// HealthChecker checks the health of a ledger dependency.
type HealthChecker interface {
	// Ping returns nil if the dependency is usable.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "postgresql", "redis", "ledger-sync").
	Name() string
}
