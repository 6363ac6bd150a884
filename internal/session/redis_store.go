package session

// redis_store.go persists principals in Redis so sessions survive restarts
// and are shared between instances.  Each record is the JSON principal under
// admin_user:<sid> with a sliding TTL.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a store writing under prefix (may be empty).  A
// non-positive ttl keeps records until logout.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(sid string) string {
	if s.prefix == "" {
		return storageKey(sid)
	}
	return s.prefix + ":" + storageKey(sid)
}

func (s *RedisStore) Load(ctx context.Context, sid string) (model.Principal, error) {
	raw, err := s.rdb.Get(ctx, s.key(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Principal{}, ErrNoSession
	}
	if err != nil {
		return model.Principal{}, fmt.Errorf("load session: %w", err)
	}
	var p model.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		// an unreadable record is treated as absent
		return model.Principal{}, ErrNoSession
	}
	if s.ttl > 0 {
		s.rdb.Expire(ctx, s.key(sid), s.ttl)
	}
	return p, nil
}

func (s *RedisStore) Save(ctx context.Context, sid string, p model.Principal) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := s.rdb.Set(ctx, s.key(sid), raw, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	if err := s.rdb.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
