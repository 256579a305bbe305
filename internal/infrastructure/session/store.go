package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "view:"
	ttl       = 24 * time.Hour
	// maxAttempts bounds optimistic retries when a watched key changes under us.
	maxAttempts = 5
)

// ErrConflict is returned when an atomic update kept racing with other writers.
var ErrConflict = errors.New("session: concurrent update conflict")

// Store keeps per-session view state as opaque bytes.
// Load returns (nil, nil) for a missing key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, val []byte) error
	Delete(ctx context.Context, key string) error
	// Update applies fn to the current value atomically. Returning an error from fn
	// aborts the update without writing.
	Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error
}

// Key builds a namespaced key for one piece of a session's view state.
func Key(sid string, parts ...string) string {
	return keyPrefix + sid + ":" + strings.Join(parts, ":")
}

// RedisStore is the production store. Values expire after 24h of inactivity.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

func (s *RedisStore) Save(ctx context.Context, key string, val []byte) error {
	return s.rdb.Set(ctx, key, val, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func (s *RedisStore) Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error {
	txf := func(tx *redis.Tx) error {
		old, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		next, err := fn(old)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, ttl)
			return nil
		})
		return err
	}
	for i := 0; i < maxAttempts; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrConflict
}

// MemoryStore is used when no Redis is configured and in tests.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.data[key]), nil
}

func (s *MemoryStore) Save(_ context.Context, key string, val []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = clone(val)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, key string, fn func(old []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(clone(s.data[key]))
	if err != nil {
		return err
	}
	s.data[key] = clone(next)
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Get decodes the JSON value at key. ok is false when the key is missing.
func Get[T any](ctx context.Context, s Store, key string) (v T, ok bool, err error) {
	b, err := s.Load(ctx, key)
	if err != nil || b == nil {
		return v, false, err
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, true, nil
}

// Put stores v as JSON at key.
func Put[T any](ctx context.Context, s Store, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Save(ctx, key, b)
}

// Mutate atomically decodes the value at key, applies fn and writes the result back.
// A missing key starts from the zero value. If fn fails nothing is written.
func Mutate[T any](ctx context.Context, s Store, key string, fn func(*T) error) (T, error) {
	var result T
	err := s.Update(ctx, key, func(old []byte) ([]byte, error) {
		var v T
		if len(old) > 0 {
			if err := json.Unmarshal(old, &v); err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
		}
		if err := fn(&v); err != nil {
			return nil, err
		}
		result = v
		return json.Marshal(v)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
