package cache

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cfoust/courtelo/pkg/config"

	"github.com/go-redis/redis/v9"
	"github.com/sasha-s/go-deadlock"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

var Missing = fmt.Errorf("result missing")

type FSStore string

func (f FSStore) getPath(key string) string {
	return filepath.Join(string(f), key)
}

func (f FSStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.getPath(key))
	if os.IsNotExist(err) {
		return nil, Missing
	}

	return data, err
}

func (f FSStore) Set(ctx context.Context, key string, data []byte) error {
	err := os.MkdirAll(string(f), 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(f.getPath(key), data, 0644)
}

const (
	RESULT_KEY    = "courtelo-result-%s"
	RESULT_EXPIRY = time.Duration(24 * time.Hour)
)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) Get(ctx context.Context, id string) ([]byte, error) {
	key := fmt.Sprintf(RESULT_KEY, id)
	data, err := r.client.Get(ctx, key).Bytes()

	if err == redis.Nil {
		return nil, Missing
	}

	if err != nil {
		return nil, err
	}

	return data, nil
}

func (r *RedisStore) Set(ctx context.Context, id string, data []byte) error {
	key := fmt.Sprintf(RESULT_KEY, id)
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// MemoryStore keeps results for the life of the process.
type MemoryStore struct {
	entries map[string][]byte
	mutex   deadlock.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	data, ok := m.entries[key]
	if !ok {
		return nil, Missing
	}

	return append([]byte(nil), data...), nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, data []byte) error {
	m.mutex.Lock()
	m.entries[key] = append([]byte(nil), data...)
	m.mutex.Unlock()
	return nil
}

// TieredStore reads through a fast front store to a slower back store and
// fills the front on a back hit.
type TieredStore struct {
	front Store
	back  Store
}

func NewTieredStore(front, back Store) *TieredStore {
	return &TieredStore{
		front: front,
		back:  back,
	}
}

func (t *TieredStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := t.front.Get(ctx, key)
	if err != Missing {
		return data, err
	}

	data, err = t.back.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	return data, t.front.Set(ctx, key, data)
}

func (t *TieredStore) Set(ctx context.Context, key string, data []byte) error {
	err := t.back.Set(ctx, key, data)
	if err != nil {
		return err
	}

	return t.front.Set(ctx, key, data)
}

func (t *TieredStore) Close() error {
	return Close(t.back)
}

// Close releases whatever connection a store holds. Stores without one are
// left alone.
func Close(store Store) error {
	closer, ok := store.(io.Closer)
	if !ok {
		return nil
	}

	return closer.Close()
}

var _ Store = (*FSStore)(nil)
var _ Store = (*RedisStore)(nil)
var _ Store = (*MemoryStore)(nil)
var _ Store = (*TieredStore)(nil)

// NewStore picks a backend from the settings. Redis wins over a directory,
// and memory sits in front of either one. With nothing configured there is
// no store. Callers release it with Close.
func NewStore(settings config.CacheSettings) Store {
	var store Store
	if settings.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     settings.Redis.Address,
			Password: settings.Redis.Password,
			DB:       settings.Redis.DB,
		})
		store = NewRedisStore(client, RESULT_EXPIRY)
	} else if settings.Directory != "" {
		store = FSStore(settings.Directory)
	}

	if !settings.Memory {
		return store
	}

	if store == nil {
		return NewMemoryStore()
	}

	return NewTieredStore(NewMemoryStore(), store)
}
