package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect-n/internal/domain"
	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "connectn:game:"

var RedisClient *redis.Client
var redisEnabled bool

// InitRedis initializes Redis connection
func InitRedis(addr, password string) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Warning: Could not connect to Redis: %v. Games will only live in memory.", err)
		redisEnabled = false
		return nil // Don't fail startup if Redis is unavailable
	}

	redisEnabled = true
	log.Println("[REDIS] Connected successfully")
	return nil
}

// IsRedisEnabled returns whether Redis is available
func IsRedisEnabled() bool {
	return redisEnabled
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// SnapshotStore keeps in-progress games in Redis so they survive a restart.
// Finished games are deleted, nothing is kept as history.
type SnapshotStore struct {
	client *redis.Client
}

func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

func snapshotKey(gameID string) string {
	return snapshotKeyPrefix + gameID
}

func (s *SnapshotStore) Save(ctx context.Context, snap domain.SessionSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %s: %w", snap.GameID, err)
	}
	if err := s.client.Set(ctx, snapshotKey(snap.GameID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot %s: %w", snap.GameID, err)
	}
	return nil
}

// Load returns nil, nil when the game is not stored
func (s *SnapshotStore) Load(ctx context.Context, gameID string) (*domain.SessionSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", gameID, err)
	}

	var snap domain.SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", gameID, err)
	}
	return &snap, nil
}

func (s *SnapshotStore) Delete(ctx context.Context, gameID string) error {
	return s.client.Del(ctx, snapshotKey(gameID)).Err()
}
