package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Entry struct {
	Id        uuid.UUID                     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID                     `gorm:"type:uuid;not null;index"`
	Content   string                        `gorm:"type:text;not null"`
	Mood      int                           `gorm:"not null;default:0"`
	Topics    datatypes.JSONSlice[string]   `gorm:"type:jsonb"`
	CreatedAt time.Time                     `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time                     `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt                `gorm:"index"`
}

func (Entry) TableName() string {
	return "entries"
}
