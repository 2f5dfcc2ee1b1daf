package memory

import (
	"time"

	"reflecta-journal-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type ChatSessionRepository struct {
	cache *cache.Cache
}

func NewChatSessionRepository() *ChatSessionRepository {
	// Sessions idle for an hour are evicted; the next activation rebuilds
	// them from the mirror and the remote store.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ChatSessionRepository{
		cache: c,
	}
}

func (r *ChatSessionRepository) Save(session *store.ChatSession) {
	r.cache.Set(session.UserID.String(), session, cache.DefaultExpiration)
}

func (r *ChatSessionRepository) Get(userID string) (*store.ChatSession, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.ChatSession), true
	}
	return nil, false
}

func (r *ChatSessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
