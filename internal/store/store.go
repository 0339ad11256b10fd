// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"careerpilot/internal/common/database"
	"careerpilot/internal/common/errors"
	"careerpilot/internal/common/logger"
	"careerpilot/internal/models"

	"github.com/redis/go-redis/v9"
)

// Snapshot keys. Each key holds one JSON blob that is fully replaced on every
// relevant change; there is no versioning or migration.
const (
	KeyUser         = "cp:user"
	KeyStats        = "cp:stats"
	KeyHistory      = "cp:history"
	KeyApplications = "cp:applications"
)

// Store persists the four application snapshots in Redis.
type Store struct {
	redis  *database.RedisClient
	logger logger.Logger
}

func New(redisClient *database.RedisClient, log logger.Logger) *Store {
	return &Store{
		redis:  redisClient,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
	}
}

// Snapshot is the full persisted state loaded at startup.
type Snapshot struct {
	User         models.User
	Stats        models.UserStats
	History      []models.PromptLog
	Applications []models.ApplicationRecord
}

// Load reads all snapshots. Absent keys yield the given defaults; a corrupt
// blob is an error rather than silently discarded state.
func (s *Store) Load(ctx context.Context, defaultStats models.UserStats) (*Snapshot, error) {
	snap := &Snapshot{
		User:         models.GuestUser(),
		Stats:        defaultStats,
		History:      []models.PromptLog{},
		Applications: []models.ApplicationRecord{},
	}

	if err := s.loadKey(ctx, KeyUser, &snap.User); err != nil {
		return nil, err
	}
	if err := s.loadKey(ctx, KeyStats, &snap.Stats); err != nil {
		return nil, err
	}
	if err := s.loadKey(ctx, KeyHistory, &snap.History); err != nil {
		return nil, err
	}
	if err := s.loadKey(ctx, KeyApplications, &snap.Applications); err != nil {
		return nil, err
	}

	s.logger.Info("snapshot loaded", map[string]interface{}{
		"applications": len(snap.Applications),
		"historyRows":  len(snap.History),
		"loggedIn":     snap.User.IsLoggedIn,
	})

	return snap, nil
}

func (s *Store) loadKey(ctx context.Context, key string, dest interface{}) error {
	raw, err := s.redis.Get(ctx, key)
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil
		}
		return errors.NewStoreReadFailedError(key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return errors.NewStoreReadFailedError(key, fmt.Errorf("corrupt snapshot: %w", err))
	}
	return nil
}

// SaveUser replaces the user snapshot.
func (s *Store) SaveUser(ctx context.Context, user models.User) error {
	return s.saveKey(ctx, KeyUser, user)
}

// SaveStats replaces the usage stats snapshot.
func (s *Store) SaveStats(ctx context.Context, stats models.UserStats) error {
	return s.saveKey(ctx, KeyStats, stats)
}

// SaveHistory replaces the interaction log snapshot.
func (s *Store) SaveHistory(ctx context.Context, history []models.PromptLog) error {
	return s.saveKey(ctx, KeyHistory, history)
}

// SaveApplications replaces the application records snapshot.
func (s *Store) SaveApplications(ctx context.Context, records []models.ApplicationRecord) error {
	return s.saveKey(ctx, KeyApplications, records)
}

func (s *Store) saveKey(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.NewStoreWriteFailedError(key, err)
	}
	if err := s.redis.Set(ctx, key, payload, 0); err != nil {
		s.logger.Error("snapshot write failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		return errors.NewStoreWriteFailedError(key, err)
	}
	return nil
}

// Reset deletes every snapshot key. Used by debug seeding.
func (s *Store) Reset(ctx context.Context) error {
	return s.redis.Del(ctx, KeyUser, KeyStats, KeyHistory, KeyApplications)
}
