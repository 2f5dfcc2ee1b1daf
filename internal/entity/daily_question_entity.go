package entity

import (
	"time"

	"github.com/google/uuid"
)

type DailyQuestion struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Text      string
	Category  string
	IsActive  bool
	CreatedAt time.Time
}
