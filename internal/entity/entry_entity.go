package entity

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one persisted journal submission. Mood 0 means the entry has not
// been scored yet (e.g. raw voice transcript awaiting analysis).
type Entry struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	Content   string
	Mood      int
	Topics    []string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
