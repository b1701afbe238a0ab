package service

import (
	"context"
	"errors"
	"time"

	"ai-analytics-be/internal/dto"
	"ai-analytics-be/internal/pkg/apperror"
	"ai-analytics-be/internal/repository/contract"
	"ai-analytics-be/pkg/nlq"
	"ai-analytics-be/pkg/stage"
	"ai-analytics-be/pkg/store"
)

type IQueryService interface {
	Run(ctx context.Context, sessionID string, req *dto.RunQueryRequest) (*dto.RunQueryResponse, error)
	History(ctx context.Context, sessionID string) ([]dto.QueryHistoryEntry, error)
}

type queryService struct {
	repo     contract.ISessionRepository
	engine   *nlq.Engine
	locks    *SessionLocks
	activity IActivityService
}

func NewQueryService(
	repo contract.ISessionRepository,
	engine *nlq.Engine,
	locks *SessionLocks,
	activity IActivityService,
) IQueryService {
	return &queryService{
		repo:     repo,
		engine:   engine,
		locks:    locks,
		activity: activity,
	}
}

func (c *queryService) Run(ctx context.Context, sessionID string, req *dto.RunQueryRequest) (*dto.RunQueryResponse, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	session, err := loadSession(ctx, c.repo, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Gate.Require(stage.Query); err != nil {
		return nil, err
	}

	resolution, err := c.engine.Resolve(ctx, req.Query, session.Current)
	if err != nil {
		// Failed queries are part of the history too, but only resolution
		// failures; unknown sessions and locked stages never get this far.
		var ambiguous *apperror.AmbiguousQueryError
		var unresolved *apperror.UnresolvedQueryError
		if errors.As(err, &ambiguous) || errors.As(err, &unresolved) {
			session.QueryHistory = append(session.QueryHistory, store.QueryRecord{
				Timestamp:   time.Now(),
				Query:       req.Query,
				Resolved:    false,
				Explanation: err.Error(),
			})
			if saveErr := c.repo.Save(ctx, session); saveErr != nil {
				return nil, saveErr
			}
		}
		return nil, err
	}

	session.QueryHistory = append(session.QueryHistory, store.QueryRecord{
		Timestamp:   time.Now(),
		Query:       req.Query,
		Tier:        resolution.Tier,
		Resolved:    true,
		Explanation: resolution.Explanation,
		Result:      resolution.Result,
	})
	session.Gate.MarkComplete(stage.Query)

	if err := c.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	c.activity.Emit(ctx, sessionID, EventQueryExecuted, map[string]interface{}{
		"query": req.Query,
		"tier":  resolution.Tier,
	})

	return &dto.RunQueryResponse{
		Query:       req.Query,
		Tier:        resolution.Tier,
		Explanation: resolution.Explanation,
		Result:      resolution.Result,
	}, nil
}

func (c *queryService) History(ctx context.Context, sessionID string) ([]dto.QueryHistoryEntry, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	session, err := loadSession(ctx, c.repo, sessionID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.QueryHistoryEntry, 0, len(session.QueryHistory))
	for _, rec := range session.QueryHistory {
		entries = append(entries, dto.QueryHistoryEntry{
			Timestamp:   rec.Timestamp,
			Query:       rec.Query,
			Tier:        rec.Tier,
			Resolved:    rec.Resolved,
			Explanation: rec.Explanation,
			Summary:     summarizeResult(rec.Result),
		})
	}
	return entries, nil
}

// summarizeResult reduces a stored result to its dimensions so history
// responses stay small regardless of result size.
func summarizeResult(r *nlq.Result) *dto.ResultSummary {
	if r == nil {
		return nil
	}
	s := &dto.ResultSummary{Kind: string(r.Kind)}
	switch r.Kind {
	case nlq.KindScalar:
		s.Value = r.Scalar
	case nlq.KindSeries:
		s.Length = len(r.Series)
	case nlq.KindTable:
		if r.Table != nil {
			s.Rows = len(r.Table.Rows)
			s.Columns = r.Table.Columns
		}
	}
	return s
}
