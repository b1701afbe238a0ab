package contract

import (
	"context"

	"ai-analytics-be/pkg/store"
)

// ISessionRepository moves session state in and out of the configured store.
// Get returns (nil, nil) for unknown ids; services translate that into
// SessionNotFoundError. Save must be called after every mutation so the
// redis/database backends observe the change.
type ISessionRepository interface {
	Create(ctx context.Context, session *store.Session) error
	Get(ctx context.Context, sessionID string) (*store.Session, error)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, sessionID string) error
}
