package service

import (
	"context"
	"time"

	"ai-analytics-be/internal/dto"
	"ai-analytics-be/internal/repository/contract"
	"ai-analytics-be/pkg/report"
	"ai-analytics-be/pkg/stage"
	"ai-analytics-be/pkg/store"
)

type IReportService interface {
	Generate(ctx context.Context, sessionID string) (*dto.GenerateReportResponse, error)
	Download(ctx context.Context, sessionID, filename string) (string, error)
}

type reportService struct {
	repo     contract.ISessionRepository
	compiler *report.Compiler
	locks    *SessionLocks
	activity IActivityService
}

func NewReportService(
	repo contract.ISessionRepository,
	compiler *report.Compiler,
	locks *SessionLocks,
	activity IActivityService,
) IReportService {
	return &reportService{
		repo:     repo,
		compiler: compiler,
		locks:    locks,
		activity: activity,
	}
}

func (c *reportService) Generate(ctx context.Context, sessionID string) (*dto.GenerateReportResponse, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	session, err := loadSession(ctx, c.repo, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Gate.Require(stage.Report); err != nil {
		return nil, err
	}

	doc, filename, err := c.compiler.Compile(session)
	if err != nil {
		return nil, err
	}

	session.Report = &store.ReportStatus{
		Filename:    filename,
		GeneratedAt: time.Now(),
	}
	session.Gate.MarkComplete(stage.Report)

	if err := c.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	c.activity.Emit(ctx, sessionID, EventReportGenerated, map[string]interface{}{
		"filename": filename,
	})

	return &dto.GenerateReportResponse{
		Filename: filename,
		Document: doc,
	}, nil
}

// Download resolves a report filename to a path on disk. The session must
// exist; the compiler rejects anything outside its directory.
func (c *reportService) Download(ctx context.Context, sessionID, filename string) (string, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	if _, err := loadSession(ctx, c.repo, sessionID); err != nil {
		return "", err
	}
	return c.compiler.Path(filename)
}
