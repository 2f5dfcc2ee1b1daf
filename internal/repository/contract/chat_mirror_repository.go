package contract

import (
	"context"

	"reflecta-journal-be/internal/entity"

	"github.com/google/uuid"
)

// ChatMirrorRepository is the durable local mirror of a user's chat history,
// read synchronously on session activation for instant display before the
// remote store answers. Keyed per user to avoid cross-account leakage.
type ChatMirrorRepository interface {
	Read(ctx context.Context, userId uuid.UUID) ([]entity.HistoryMessage, error)
	Write(ctx context.Context, userId uuid.UUID, messages []entity.HistoryMessage) error
	Clear(ctx context.Context, userId uuid.UUID) error
}
