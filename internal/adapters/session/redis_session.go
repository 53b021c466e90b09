// Package session implements the server-side session manager on Redis.
// A session is an opaque UUID token mapped to the principal's id and role;
// the client holds only the token.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

const keyPrefix = "session:"

// RedisClient is the subset of redis.Client the manager needs. Narrowing the
// dependency keeps the manager testable with an in-memory fake.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisSessionManager struct {
	client RedisClient
	ttl    time.Duration
}

var _ ports.SessionManager = (*RedisSessionManager)(nil)

func NewRedisSessionManager(client RedisClient, ttl time.Duration) *RedisSessionManager {
	return &RedisSessionManager{client: client, ttl: ttl}
}

type sessionRecord struct {
	AccountID string      `json:"account_id"`
	Role      domain.Role `json:"role"`
}

func (m *RedisSessionManager) Establish(ctx context.Context, account *domain.Account) (*ports.Session, error) {
	token := uuid.NewString()
	record, err := json.Marshal(sessionRecord{AccountID: account.ID, Role: account.Role})
	if err != nil {
		return nil, err
	}

	if err := m.client.Set(ctx, keyPrefix+token, record, m.ttl).Err(); err != nil {
		return nil, err
	}

	return &ports.Session{Token: token, AccountID: account.ID, Role: account.Role}, nil
}

func (m *RedisSessionManager) Resolve(ctx context.Context, token string) (*ports.Session, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}

	raw, err := m.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNoSession
		}
		return nil, err
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, domain.ErrNoSession
	}

	// Sliding expiration: activity pushes the window out.
	_ = m.client.Expire(ctx, keyPrefix+token, m.ttl).Err()

	return &ports.Session{Token: token, AccountID: record.AccountID, Role: record.Role}, nil
}

func (m *RedisSessionManager) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.client.Del(ctx, keyPrefix+token).Err()
}
