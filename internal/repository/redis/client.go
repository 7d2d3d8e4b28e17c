package redis

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

// KeyPrefix namespaces the stored state; the session id follows it.
const KeyPrefix = "connect4State:"

// Connect opens a client and pings it. When Redis is unreachable the client
// is closed and ok is false so the caller can fall back to memory.
func Connect(ctx context.Context, addr, password string) (client *redis.Client, ok bool) {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("could not connect to redis, keeping state in memory", "addr", addr, "err", err)
		client.Close()
		return nil, false
	}

	log.Info("redis connected", "addr", addr)
	return client, true
}

// StateStore keeps each session's encoded state under KeyPrefix+sessionID.
type StateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStateStore wraps client. A ttl of zero keeps keys forever.
func NewStateStore(client *redis.Client, ttl time.Duration) *StateStore {
	return &StateStore{client: client, ttl: ttl}
}

func key(sessionID string) string {
	return KeyPrefix + sessionID
}

func (s *StateStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrStateNotFound
	}
	return data, err
}

// Save writes the state and refreshes its expiry.
func (s *StateStore) Save(ctx context.Context, sessionID string, data []byte) error {
	return s.client.Set(ctx, key(sessionID), data, s.ttl).Err()
}

func (s *StateStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, key(sessionID)).Err()
}

func (s *StateStore) Close() error {
	return s.client.Close()
}
