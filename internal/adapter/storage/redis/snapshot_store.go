package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"finance-ledger/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	snapshotKey = "ledger:snapshot"
	metaKey     = "ledger:snapshot:meta"
)

// SnapshotStore implements ports.SnapshotStore as one JSON document in Redis.
type SnapshotStore struct {
	client goredis.UniversalClient
	log    zerolog.Logger
}

// NewSnapshotStore creates a Redis-backed snapshot store.
func NewSnapshotStore(client goredis.UniversalClient, log zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{client: client, log: log}
}

// Save replaces the stored document and its metadata in one MULTI/EXEC.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *domain.LedgerSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, snapshotKey, data, 0)
		pipe.HSet(ctx, metaKey,
			"saved_at", snapshot.SavedAt.Format(time.RFC3339Nano),
			"wallets", len(snapshot.Wallets),
			"transactions", len(snapshot.Transactions),
			"loans", len(snapshot.Loans),
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save snapshot: %w", err)
	}

	s.log.Debug().Int("bytes", len(data)).Msg("ledger snapshot saved to redis")
	return nil
}

// Load returns the stored snapshot, or nil, nil when none exists.
func (s *SnapshotStore) Load(ctx context.Context) (*domain.LedgerSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis load snapshot: %w", err)
	}

	var snapshot domain.LedgerSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
