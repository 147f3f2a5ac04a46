package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"user-admin/internal/model"
)

const (
	SnapshotKey        = "useradmin:users:snapshot"
	DefaultSnapshotTTL = 24 * time.Hour
)

var (
	ErrNoSnapshot       = errors.New("no snapshot")
	errUnsupportedValue = errors.New("unsupported value type")
)

// Snapshot is the stored form of the last good user list.
type Snapshot struct {
	SavedAt time.Time    `json:"saved_at"`
	Users   []model.User `json:"users"`
}

// Snapshots saves and loads the user list under SnapshotKey.
type Snapshots struct {
	cache Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewSnapshots(c Cache, ttl time.Duration) *Snapshots {
	return &Snapshots{cache: c, ttl: ttl, now: time.Now}
}

func (s *Snapshots) Save(ctx context.Context, users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	data, err := json.Marshal(Snapshot{SavedAt: s.now().UTC(), Users: users})
	if err != nil {
		return fmt.Errorf("SaveSnapshot: %w", err)
	}
	if err := s.cache.Set(ctx, SnapshotKey, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("SaveSnapshot: %w", err)
	}
	return nil
}

// Load returns ErrNoSnapshot when nothing is stored or the entry expired.
func (s *Snapshots) Load(ctx context.Context) (Snapshot, error) {
	raw, err := s.cache.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("LoadSnapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("LoadSnapshot: %w", err)
	}
	return snap, nil
}

func (s *Snapshots) Clear(ctx context.Context) error {
	if err := s.cache.Del(ctx, SnapshotKey).Err(); err != nil {
		return fmt.Errorf("ClearSnapshot: %w", err)
	}
	return nil
}

func (s *Snapshots) Close() error {
	return s.cache.Close()
}
