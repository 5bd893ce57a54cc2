package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	runDomain "github.com/turtacn/LeadScout/internal/domain/run"
	appErrors "github.com/turtacn/LeadScout/pkg/errors"
	"github.com/turtacn/LeadScout/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// StateCache
// ─────────────────────────────────────────────────────────────────────────────

// CachedState is the subset of run state mirrored into Redis at every
// checkpoint. Readers must tolerate it lagging slightly behind the engine;
// progress only ever advances.
type CachedState struct {
	Status          runDomain.Status `json:"status"`
	CurrentRound    int              `json:"current_round"`
	ProgressMessage string           `json:"progress_message"`
	ErrorMessage    string           `json:"error_message,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// StateCache writes and reads per-run progress snapshots. A nil *StateCache
// is a valid no-op cache, so callers never need to branch on whether Redis
// is configured.
type StateCache struct {
	client *Client
	prefix string
	ttl    time.Duration
}

// NewStateCache builds a cache over the given client. ttl bounds how long a
// finished run's snapshot lingers.
func NewStateCache(client *Client, prefix string, ttl time.Duration) *StateCache {
	if prefix == "" {
		prefix = "leadscout"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &StateCache{client: client, prefix: prefix, ttl: ttl}
}

func (s *StateCache) key(runID common.ID) string {
	return fmt.Sprintf("%s:run:%s:state", s.prefix, runID)
}

// Put overwrites the snapshot for runID.
func (s *StateCache) Put(ctx context.Context, runID common.ID, state CachedState) error {
	if s == nil {
		return nil
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeInternal, "failed to marshal run state")
	}
	if err := s.client.rdb.Set(ctx, s.key(runID), payload, s.ttl).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.CodeInternal, "failed to cache run state")
	}
	return nil
}

// Get returns the snapshot for runID, or a not-found error when the key is
// absent or expired. Callers fall back to PostgreSQL on not-found.
func (s *StateCache) Get(ctx context.Context, runID common.ID) (*CachedState, error) {
	if s == nil {
		return nil, appErrors.NotFound("run state not cached")
	}

	payload, err := s.client.rdb.Get(ctx, s.key(runID)).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, appErrors.NotFound("run state not cached").
				WithDetail("run_id=" + runID.String())
		}
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, "failed to read run state")
	}

	var state CachedState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, "corrupt cached run state")
	}
	return &state, nil
}

// Delete drops the snapshot. Missing keys are not an error.
func (s *StateCache) Delete(ctx context.Context, runID common.ID) error {
	if s == nil {
		return nil
	}
	if err := s.client.rdb.Del(ctx, s.key(runID)).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.CodeInternal, "failed to delete run state")
	}
	return nil
}

//Personal.AI order the ending
