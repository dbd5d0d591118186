package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skylens/airmarket/internal/models"
)

const keyPrefix = "airmarket:flights:"

// Payload is the value cached per query. The provider name is stored so a
// cache hit can still report where the records originally came from.
type Payload struct {
	Provider string                `json:"provider"`
	Records  []models.FlightRecord `json:"records"`
}

// Store is the cache contract used by the pipeline. Get separates "absent"
// (ok=false, err=nil) from backend failure (err!=nil); the orchestrator
// treats both as a miss but only the latter is logged.
type Store interface {
	Get(ctx context.Context, key string) (*Payload, bool, error)
	Set(ctx context.Context, key string, payload Payload, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Key derives the deterministic cache key for a query: sha256 over the
// canonical JSON of every request field.
func Key(q models.FlightQuery) string {
	data, _ := json.Marshal(q)
	hash := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(hash[:])
}

type RedisStore struct {
	client *redis.Client
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
	}
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Payload, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, false, err
	}
	return &payload, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, payload Payload, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *RedisStore) Invalidate(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
