package history

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KindFlights = "flights"
	KindHotels  = "hotels"
)

// Entry is one search as the user asked it, kept for the recent-searches
// list. Results themselves are never stored.
type Entry struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Origin        string    `json:"origin,omitempty"`
	Destination   string    `json:"destination"`
	Phrase        string    `json:"phrase,omitempty"`
	DepartureDate string    `json:"departure_date"`
	ReturnDate    *string   `json:"return_date,omitempty"`
	ResultCount   int       `json:"result_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type Store interface {
	Record(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

type RedisStore struct {
	client     *redis.Client
	key        string
	ttl        time.Duration
	maxEntries int64
}

type RedisConfig struct {
	Host       string
	Port       string
	Password   string
	DB         int
	TTL        time.Duration
	MaxEntries int
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:       "localhost",
		Port:       "6379",
		Password:   "",
		DB:         0,
		TTL:        7 * 24 * time.Hour,
		MaxEntries: 100,
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
		_ = client.Close()
		return nil, err
	}

	return newRedisStore(client, cfg), nil
}

func newRedisStore(client *redis.Client, cfg RedisConfig) *RedisStore {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultRedisConfig().MaxEntries
	}
	return &RedisStore{
		client:     client,
		key:        "search:history",
		ttl:        cfg.TTL,
		maxEntries: int64(maxEntries),
	}
}

func (s *RedisStore) Record(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, data)
	pipe.LTrim(ctx, s.key, 0, s.maxEntries-1)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns the newest entries first. Entries that no longer decode are
// skipped.
func (s *RedisStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || int64(limit) > s.maxEntries {
		limit = int(s.maxEntries)
	}

	values, err := s.client.LRange(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		if err == redis.Nil {
			return []Entry{}, nil
		}
		return nil, err
	}

	return decodeEntries(values), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func decodeEntries(values []string) []Entry {
	entries := make([]Entry, 0, len(values))
	for _, v := range values {
		var e Entry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			log.Printf("Skipping unreadable history entry: %v", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

type NoOpStore struct{}

func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

func (s *NoOpStore) Record(ctx context.Context, entry Entry) error {
	return nil
}

func (s *NoOpStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return []Entry{}, nil
}

func (s *NoOpStore) Close() error {
	return nil
}
