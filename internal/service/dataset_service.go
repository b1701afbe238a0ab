package service

import (
	"context"
	"fmt"
	"time"

	"ai-analytics-be/internal/dto"
	"ai-analytics-be/internal/ingest"
	"ai-analytics-be/internal/repository/contract"
	"ai-analytics-be/pkg/cleaning"
	"ai-analytics-be/pkg/stage"
	"ai-analytics-be/pkg/store"
)

type IDatasetService interface {
	Upload(ctx context.Context, sessionID, filename string, content []byte) (*dto.UploadResponse, error)
	CleaningNeeds(ctx context.Context, sessionID string) (*dto.CleaningNeedsResponse, error)
	ApplyCleaning(ctx context.Context, sessionID string, req *dto.CleanRequest) (*dto.CleanResponse, error)
}

type datasetService struct {
	repo     contract.ISessionRepository
	loader   *ingest.Loader
	cleaner  *cleaning.Engine
	locks    *SessionLocks
	activity IActivityService
}

func NewDatasetService(
	repo contract.ISessionRepository,
	loader *ingest.Loader,
	cleaner *cleaning.Engine,
	locks *SessionLocks,
	activity IActivityService,
) IDatasetService {
	return &datasetService{
		repo:     repo,
		loader:   loader,
		cleaner:  cleaner,
		locks:    locks,
		activity: activity,
	}
}

func (c *datasetService) Upload(ctx context.Context, sessionID, filename string, content []byte) (*dto.UploadResponse, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	session, err := loadSession(ctx, c.repo, sessionID)
	if err != nil {
		return nil, err
	}

	frame, err := c.loader.Load(filename, content)
	if err != nil {
		return nil, err
	}

	// Re-uploading starts the pipeline over: everything derived from the
	// previous dataset is invalid.
	if session.Raw != nil {
		session.Reset()
	}

	session.Raw = frame
	session.SetCurrent(frame)
	session.FileInfo = &store.FileInfo{
		Name:       filename,
		SizeBytes:  int64(len(content)),
		Rows:       frame.RowCount(),
		Columns:    frame.ColumnCount(),
		UploadedAt: time.Now(),
	}
	session.Gate.MarkComplete(stage.Upload)

	if err := c.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	c.activity.Emit(ctx, sessionID, EventDatasetUploaded, map[string]interface{}{
		"file":    filename,
		"rows":    frame.RowCount(),
		"columns": frame.ColumnCount(),
	})

	return &dto.UploadResponse{
		FileInfo: session.FileInfo,
		Profile:  session.Profile,
		Preview:  buildPreview(session.Current),
	}, nil
}

func (c *datasetService) CleaningNeeds(ctx context.Context, sessionID string) (*dto.CleaningNeedsResponse, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	session, err := loadSession(ctx, c.repo, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Gate.Require(stage.Clean); err != nil {
		return nil, err
	}

	frame := session.Current
	missing := make(map[string]int)
	warnings := make([]string, 0)
	for i, col := range frame.Cols {
		nulls := frame.NullCount(i)
		if nulls == 0 {
			continue
		}
		missing[col.Name] = nulls
		if rows := frame.RowCount(); rows > 0 && nulls*2 > rows {
			warnings = append(warnings, fmt.Sprintf("column %q is more than half missing", col.Name))
		}
	}

	duplicates := frame.DuplicateCount()
	if duplicates > 0 {
		warnings = append(warnings, fmt.Sprintf("%d duplicate rows detected", duplicates))
	}

	return &dto.CleaningNeedsResponse{
		MissingValues: missing,
		Duplicates:    duplicates,
		Warnings:      warnings,
	}, nil
}

func (c *datasetService) ApplyCleaning(ctx context.Context, sessionID string, req *dto.CleanRequest) (*dto.CleanResponse, error) {
	unlock := c.locks.Lock(sessionID)
	defer unlock()

	session, err := loadSession(ctx, c.repo, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Gate.Require(stage.Clean); err != nil {
		return nil, err
	}

	cleaned, op, err := c.cleaner.Apply(session.Current, cleaning.Request{
		CleanMissing:      req.CleanMissing,
		MissingStrategy:   cleaning.MissingStrategy(req.MissingStrategy),
		Columns:           req.MissingColumns,
		CleanDuplicates:   req.CleanDuplicates,
		DuplicateStrategy: cleaning.DuplicateStrategy(req.DuplicateStrategy),
	})
	if err != nil {
		return nil, err
	}

	session.Cleaned = cleaned
	session.SetCurrent(cleaned)
	session.CleaningLog = append(session.CleaningLog, *op)
	session.Gate.MarkComplete(stage.Clean)

	if err := c.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	c.activity.Emit(ctx, sessionID, EventCleaningApplied, map[string]interface{}{
		"kind":        op.Kind,
		"rows_before": op.RowsBefore,
		"rows_after":  op.RowsAfter,
	})

	return &dto.CleanResponse{
		Operation: op,
		Profile:   session.Profile,
		Preview:   buildPreview(session.Current),
	}, nil
}
