package memory

import (
	"time"

	"reflecta-journal-be/pkg/voice"

	"github.com/patrickmn/go-cache"
)

// VoiceSession pairs a capture session with the relay feeding it frames from
// the client transport.
type VoiceSession struct {
	Session *voice.Session
	Relay   *voice.RelayProvider
}

type VoiceSessionRepository struct {
	cache *cache.Cache
}

func NewVoiceSessionRepository() *VoiceSessionRepository {
	c := cache.New(30*time.Minute, 10*time.Minute)
	return &VoiceSessionRepository{
		cache: c,
	}
}

func (r *VoiceSessionRepository) Save(userID string, session *VoiceSession) {
	r.cache.Set(userID, session, cache.DefaultExpiration)
}

func (r *VoiceSessionRepository) Get(userID string) (*VoiceSession, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*VoiceSession), true
	}
	return nil, false
}

func (r *VoiceSessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
