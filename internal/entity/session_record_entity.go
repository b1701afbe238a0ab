package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SessionRecord stores a full analysis session as a JSON document. The
// session state is opaque to the database; all reads and writes go through
// the whole document.
type SessionRecord struct {
	ID        string `gorm:"primaryKey"`
	State     datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SessionRecord) TableName() string {
	return "analysis_sessions"
}
