package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ai-analytics-be/internal/entity"
	"ai-analytics-be/internal/repository/contract"
	"ai-analytics-be/pkg/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepositoryImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) (contract.ISessionRepository, error) {
	if err := db.AutoMigrate(&entity.SessionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate session records: %w", err)
	}
	return &SessionRepositoryImpl{db: db}, nil
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *store.Session) error {
	record, err := toRecord(session)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *SessionRepositoryImpl) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	var record entity.SessionRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return fromRecord(&record)
}

func (r *SessionRepositoryImpl) Save(ctx context.Context, session *store.Session) error {
	record, err := toRecord(session)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
	}).Create(record).Error
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Delete(&entity.SessionRecord{}, "id = ?", sessionID).Error
}

func toRecord(session *store.Session) (*entity.SessionRecord, error) {
	state, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	return &entity.SessionRecord{
		ID:        session.ID,
		State:     state,
		CreatedAt: session.CreatedAt,
	}, nil
}

func fromRecord(record *entity.SessionRecord) (*store.Session, error) {
	var session store.Session
	if err := json.Unmarshal(record.State, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", record.ID, err)
	}
	return &session, nil
}
