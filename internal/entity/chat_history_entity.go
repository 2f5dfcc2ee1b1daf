package entity

import (
	"time"

	"github.com/google/uuid"
)

// HistoryMessage is the session-local view of one conversation line. It is
// what gets mirrored to Redis and published to the client, not a DB row.
type HistoryMessage struct {
	Id        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}
