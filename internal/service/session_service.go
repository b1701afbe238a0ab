package service

import (
	"context"

	"ai-analytics-be/internal/dto"
	"ai-analytics-be/internal/pkg/apperror"
	"ai-analytics-be/internal/repository/contract"
	"ai-analytics-be/pkg/dataset"
	"ai-analytics-be/pkg/store"
)

const previewRows = 5

type ISessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	Summary(ctx context.Context, sessionID string) (*dto.SummaryResponse, error)
	Reset(ctx context.Context, sessionID string) (*dto.SummaryResponse, error)
}

type sessionService struct {
	repo     contract.ISessionRepository
	locks    *SessionLocks
	activity IActivityService
}

func NewSessionService(repo contract.ISessionRepository, locks *SessionLocks, activity IActivityService) ISessionService {
	return &sessionService{
		repo:     repo,
		locks:    locks,
		activity: activity,
	}
}

func (c *sessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := store.NewSession()
	if err := c.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return &dto.CreateSessionResponse{SessionID: session.ID}, nil
}

func (c *sessionService) Summary(ctx context.Context, sessionID string) (*dto.SummaryResponse, error) {
	// Read paths lock too: the memory store hands out the live session, so
	// snapshotting it while a writer holds it would race.
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	session, err := loadSession(ctx, c.repo, sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{
		Summary: session.Summarize(),
		Preview: buildPreview(session.Current),
	}, nil
}

func (c *sessionService) Reset(ctx context.Context, sessionID string) (*dto.SummaryResponse, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	session, err := loadSession(ctx, c.repo, sessionID)
	if err != nil {
		return nil, err
	}

	session.Reset()
	if err := c.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	c.activity.Emit(ctx, sessionID, EventSessionReset, nil)
	return &dto.SummaryResponse{Summary: session.Summarize()}, nil
}

// loadSession resolves a session ID or reports it unknown. Shared by every
// service that operates on an existing session.
func loadSession(ctx context.Context, repo contract.ISessionRepository, sessionID string) (*store.Session, error) {
	session, err := repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, &apperror.SessionNotFoundError{SessionID: sessionID}
	}
	return session, nil
}

// buildPreview renders the head of the active generation for UI display.
func buildPreview(f *dataset.Frame) *dto.DatasetPreview {
	if f == nil {
		return nil
	}
	return &dto.DatasetPreview{
		Columns: f.ColumnNames(),
		Rows:    f.Head(previewRows),
	}
}
