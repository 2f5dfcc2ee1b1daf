package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID `gorm:"type:uuid;index"`
	MessageText   string
	IsUserMessage bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
