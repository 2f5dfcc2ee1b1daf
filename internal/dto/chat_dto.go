package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatMessageRequest struct {
	MessageText   string `json:"message_text" validate:"required"`
	IsUserMessage bool   `json:"is_user_message"`
}

type SendChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessageResponse struct {
	Id            uuid.UUID `json:"id"`
	MessageText   string    `json:"message_text"`
	IsUserMessage bool      `json:"is_user_message"`
	CreatedAt     time.Time `json:"created_at"`
}

// GroupedChatMessagesResponse buckets one calendar day of messages, keyed by
// the app timezone.
type GroupedChatMessagesResponse struct {
	Date     string                `json:"date"` // YYYY-MM-DD
	Messages []ChatMessageResponse `json:"messages"`
}
