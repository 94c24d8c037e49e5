package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CommandGuard implements ports.CommandGuard for a single process.
type CommandGuard struct {
	claims *cache.Cache
}

// NewCommandGuard creates a guard whose expired keys are purged every cleanupInterval.
func NewCommandGuard(cleanupInterval time.Duration) *CommandGuard {
	return &CommandGuard{claims: cache.New(cache.NoExpiration, cleanupInterval)}
}

// Claim adds key unless a live entry exists. Add is atomic in go-cache.
func (g *CommandGuard) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := g.claims.Add(key, time.Now().UTC(), ttl); err != nil {
		return false, nil
	}
	return true, nil
}

// Release frees a claimed key so the command can be retried.
func (g *CommandGuard) Release(ctx context.Context, key string) error {
	g.claims.Delete(key)
	return nil
}
