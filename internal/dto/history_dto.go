package dto

import "time"

type HistoryMessageDTO struct {
	Id        string    `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatHistoryResponse struct {
	Messages []HistoryMessageDTO `json:"messages"`
	Loaded   bool                `json:"loaded"`
	Syncing  bool                `json:"syncing"`
}

type AddHistoryMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// AddExchangeRequest appends a user message and its reply as one ordered unit.
type AddExchangeRequest struct {
	UserText string `json:"user_text" validate:"required"`
	AiText   string `json:"ai_text" validate:"required"`
}
