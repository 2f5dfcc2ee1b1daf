package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEntryRequest struct {
	Content string   `json:"content" validate:"required"`
	Mood    int      `json:"mood" validate:"omitempty,min=1,max=5"` // 0 means unscored, analysis fills it in
	Topics  []string `json:"topics,omitempty"`
}

type CreateEntryResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowEntryResponse struct {
	Id        uuid.UUID  `json:"id"`
	Content   string     `json:"content"`
	Mood      int        `json:"mood"`
	Topics    []string   `json:"topics"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type UpdateEntryRequest struct {
	Id      uuid.UUID
	Content string   `json:"content" validate:"required"`
	Mood    int      `json:"mood" validate:"omitempty,min=1,max=5"`
	Topics  []string `json:"topics,omitempty"`
}

type UpdateEntryResponse struct {
	Id uuid.UUID `json:"id"`
}
