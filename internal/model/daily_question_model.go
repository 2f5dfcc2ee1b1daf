package model

import (
	"time"

	"github.com/google/uuid"
)

type DailyQuestion struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Text      string    `gorm:"type:text;not null"`
	Category  string    `gorm:"type:varchar(100);not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (DailyQuestion) TableName() string {
	return "daily_questions"
}
