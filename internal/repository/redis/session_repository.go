package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-analytics-be/internal/repository/contract"
	"ai-analytics-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "analytics:session:"

// SessionRepository persists sessions as JSON values in Redis, one key per
// session, with TTL eviction.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ contract.ISessionRepository = &SessionRepository{}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func (r *SessionRepository) Create(ctx context.Context, session *store.Session) error {
	return r.Save(ctx, session)
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	data, err := r.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return decodeSession(sessionID, data)
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, keyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func encodeSession(session *store.Session) ([]byte, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	return data, nil
}

func decodeSession(sessionID string, data []byte) (*store.Session, error) {
	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", sessionID, err)
	}
	return &session, nil
}
