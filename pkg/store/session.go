package store

import (
	"sync"

	"reflecta-journal-be/internal/entity"

	"github.com/google/uuid"
)

// ChatSession is the in-memory chat-history state for one user: the union of
// the durable mirror and the remote store, reconciled on activation and
// append-only afterwards.
type ChatSession struct {
	Mu sync.Mutex

	UserID   uuid.UUID
	Messages []entity.HistoryMessage

	// Loaded flips true only after the initial mirror+remote reconciliation
	// settles (success or failure). Syncing is true only during the remote
	// fetch phase of that initial load.
	Loaded  bool
	Syncing bool
}

// Snapshot returns a copy safe to hand to callers.
func (s *ChatSession) Snapshot() ([]entity.HistoryMessage, bool, bool) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	messages := make([]entity.HistoryMessage, len(s.Messages))
	copy(messages, s.Messages)
	return messages, s.Loaded, s.Syncing
}
