package service

import (
	"context"

	"ai-analytics-be/internal/dto"
	"ai-analytics-be/internal/repository/contract"
	"ai-analytics-be/pkg/chart"
	"ai-analytics-be/pkg/stage"
)

type IChartService interface {
	Auto(ctx context.Context, sessionID string) (*dto.ChartsResponse, error)
	Custom(ctx context.Context, sessionID string, req *dto.CustomChartRequest) (*dto.ChartsResponse, error)
	List(ctx context.Context, sessionID string) (*dto.ChartsResponse, error)
}

type chartService struct {
	repo     contract.ISessionRepository
	locks    *SessionLocks
	activity IActivityService
}

func NewChartService(repo contract.ISessionRepository, locks *SessionLocks, activity IActivityService) IChartService {
	return &chartService{
		repo:     repo,
		locks:    locks,
		activity: activity,
	}
}

func (c *chartService) Auto(ctx context.Context, sessionID string) (*dto.ChartsResponse, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	session, err := loadSession(ctx, c.repo, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Gate.Require(stage.Visualize); err != nil {
		return nil, err
	}

	specs := chart.Recommend(session.Profile)
	session.Charts = append(session.Charts, specs...)
	session.Gate.MarkComplete(stage.Visualize)

	if err := c.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	c.activity.Emit(ctx, sessionID, EventChartsGenerated, map[string]interface{}{
		"count": len(specs),
		"mode":  "auto",
	})

	return &dto.ChartsResponse{Charts: specs}, nil
}

func (c *chartService) Custom(ctx context.Context, sessionID string, req *dto.CustomChartRequest) (*dto.ChartsResponse, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	session, err := loadSession(ctx, c.repo, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Gate.Require(stage.Visualize); err != nil {
		return nil, err
	}

	spec, err := chart.Custom(session.Profile, chart.Kind(req.ChartType), req.XCol, req.YCol)
	if err != nil {
		return nil, err
	}

	session.Charts = append(session.Charts, spec)
	session.Gate.MarkComplete(stage.Visualize)

	if err := c.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	c.activity.Emit(ctx, sessionID, EventChartsGenerated, map[string]interface{}{
		"count": 1,
		"mode":  "custom",
		"kind":  req.ChartType,
	})

	return &dto.ChartsResponse{Charts: []chart.Spec{spec}}, nil
}

func (c *chartService) List(ctx context.Context, sessionID string) (*dto.ChartsResponse, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	session, err := loadSession(ctx, c.repo, sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.ChartsResponse{Charts: session.Charts}, nil
}
