package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// CommandGuard implements ports.CommandGuard using Redis SET NX, so replays
// are rejected across restarts and across several API processes.
type CommandGuard struct {
	client goredis.UniversalClient
	prefix string
}

// NewCommandGuard creates a Redis-backed command guard.
func NewCommandGuard(client goredis.UniversalClient) *CommandGuard {
	return &CommandGuard{
		client: client,
		prefix: "ledger:cmd:",
	}
}

// Claim sets key if absent. Returns false if it is already held.
func (g *CommandGuard) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := g.client.SetArgs(ctx, g.prefix+key, time.Now().UTC().Unix(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis claim command: %w", err)
	}
	return result == "OK", nil
}

// Release deletes key.
func (g *CommandGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis release command: %w", err)
	}
	return nil
}
