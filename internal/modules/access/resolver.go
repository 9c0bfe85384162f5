package access

import (
	"context"
	"strings"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/session"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RoleSource looks up the role rows of a user.
type RoleSource interface {
	FindRolesByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Role, error)
}

const emptyRolesMarker = "-"

// RoleResolver resolves the role set of a session, caching it in redis for
// the lifetime of the session (capped by maxTTL).
type RoleResolver struct {
	source RoleSource
	rdb    *redis.Client
	maxTTL time.Duration
	log    *zap.Logger
}

func NewRoleResolver(source RoleSource, rdb *redis.Client, maxTTL time.Duration, log *zap.Logger) *RoleResolver {
	if log == nil {
		log = zap.NewNop()
	}
	if maxTTL <= 0 {
		maxTTL = 5 * time.Minute
	}
	return &RoleResolver{source: source, rdb: rdb, maxTTL: maxTTL, log: log}
}

// Resolve never fails: a lookup error yields the empty set, which denies
// every gated route. Failed lookups are not cached.
func (r *RoleResolver) Resolve(ctx context.Context, sess *session.Session) RoleSet {
	key := session.RolesKey(sess.ID)

	if r.rdb != nil {
		cached, err := r.rdb.Get(ctx, key).Result()
		if err == nil {
			return decodeRoles(cached)
		}
		if err != redis.Nil {
			r.log.Warn("role cache read failed", zap.String("session_id", sess.ID), zap.Error(err))
		}
	}

	roles, err := r.source.FindRolesByUserID(ctx, sess.UserID)
	if err != nil {
		r.log.Warn("role lookup failed", zap.String("user_id", sess.UserID.String()), zap.Error(err))
		return NewRoleSet()
	}
	set := NewRoleSet(roles...)

	if r.rdb != nil {
		ttl := r.maxTTL
		if left := time.Until(sess.ExpiresAt); left > 0 && left < ttl {
			ttl = left
		}
		userKey := userSessionsKey(sess.UserID)
		pipe := r.rdb.TxPipeline()
		pipe.Set(ctx, key, encodeRoles(set), ttl)
		pipe.SAdd(ctx, userKey, sess.ID)
		pipe.Expire(ctx, userKey, r.maxTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			r.log.Warn("role cache write failed", zap.String("session_id", sess.ID), zap.Error(err))
		}
	}
	return set
}

// Invalidate drops the cached role set of a session.
func (r *RoleResolver) Invalidate(ctx context.Context, sessionID string) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Del(ctx, session.RolesKey(sessionID)).Err(); err != nil {
		r.log.Warn("role cache invalidate failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// InvalidateUser drops the cached role sets of every session of a user.
func (r *RoleResolver) InvalidateUser(ctx context.Context, userID uuid.UUID) {
	if r.rdb == nil {
		return
	}
	userKey := userSessionsKey(userID)
	ids, err := r.rdb.SMembers(ctx, userKey).Result()
	if err != nil {
		r.log.Warn("role cache invalidate failed", zap.String("user_id", userID.String()), zap.Error(err))
		return
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, session.RolesKey(id))
	}
	keys = append(keys, userKey)
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("role cache invalidate failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func userSessionsKey(userID uuid.UUID) string {
	return "user:" + userID.String() + ":sessions"
}

func encodeRoles(set RoleSet) string {
	if len(set) == 0 {
		return emptyRolesMarker
	}
	names := make([]string, 0, len(set))
	for _, r := range set.Slice() {
		names = append(names, string(r))
	}
	return strings.Join(names, ",")
}

func decodeRoles(raw string) RoleSet {
	if raw == emptyRolesMarker || raw == "" {
		return NewRoleSet()
	}
	parts := strings.Split(raw, ",")
	roles := make([]entity.Role, 0, len(parts))
	for _, p := range parts {
		roles = append(roles, entity.Role(p))
	}
	return NewRoleSet(roles...)
}
