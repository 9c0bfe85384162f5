package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store remembers revoked session ids until their tokens expire. It uses
// redis when a client is configured and a process-local map otherwise.
type Store struct {
	rdb *redis.Client

	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, revoked: make(map[string]time.Time), now: time.Now}
}

func revokedKey(id string) string {
	return fmt.Sprintf("session:%s:revoked", id)
}

func (s *Store) Revoke(ctx context.Context, sess *Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, revokedKey(sess.ID), "1", ttl).Err(); err != nil {
			return fmt.Errorf("failed to revoke session: %w", err)
		}
		// cached roles die with the session
		return s.rdb.Del(ctx, rolesKey(sess.ID)).Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[sess.ID] = sess.ExpiresAt
	return nil
}

func (s *Store) IsRevoked(ctx context.Context, id string) (bool, error) {
	if s.rdb != nil {
		n, err := s.rdb.Exists(ctx, revokedKey(id)).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[id]
	if !ok {
		return false, nil
	}
	if s.now().After(exp) {
		delete(s.revoked, id)
		return false, nil
	}
	return true, nil
}

func rolesKey(id string) string {
	return fmt.Sprintf("session:%s:roles", id)
}

// RolesKey is the redis key under which the role set of a session is cached.
func RolesKey(id string) string {
	return rolesKey(id)
}
