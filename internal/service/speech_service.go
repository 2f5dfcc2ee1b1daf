package service

import (
	"context"
	"errors"
	"sync"

	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/pkg/logger"
	"reflecta-journal-be/pkg/tts"

	"github.com/google/uuid"
)

type ISpeechService interface {
	// Synthesize returns hosted audio, or a native-synthesis directive when
	// the hosted engine is unavailable. Playback always has a path.
	Synthesize(ctx context.Context, userId uuid.UUID, req *dto.SynthesizeSpeechRequest) (*dto.SynthesizeSpeechResponse, error)

	// Stop cancels the user's in-flight synthesis, if any.
	Stop(userId uuid.UUID)
}

type synthHandle struct {
	cancel context.CancelFunc
}

type speechService struct {
	client   *tts.ElevenLabsClient
	language string
	log      logger.ILogger

	mu       sync.Mutex
	inFlight map[uuid.UUID]*synthHandle
}

func NewSpeechService(client *tts.ElevenLabsClient, language string, log logger.ILogger) ISpeechService {
	return &speechService{
		client:   client,
		language: language,
		log:      log,
		inFlight: make(map[uuid.UUID]*synthHandle),
	}
}

func (s *speechService) Synthesize(ctx context.Context, userId uuid.UUID, req *dto.SynthesizeSpeechRequest) (*dto.SynthesizeSpeechResponse, error) {
	synthCtx, cancel := context.WithCancel(ctx)
	handle := &synthHandle{cancel: cancel}
	s.track(userId, handle)
	defer s.untrack(userId, handle)

	audio, err := s.client.Synthesize(synthCtx, req.Text)
	if err != nil {
		if errors.Is(err, tts.ErrTextRequired) {
			return nil, err
		}
		if synthCtx.Err() != nil {
			return nil, errors.New("speech synthesis canceled")
		}

		// Any hosted failure (missing key included) degrades to the client's
		// own engine rather than silence.
		if !errors.Is(err, tts.ErrNoAPIKey) {
			s.log.Warn("speech", "hosted synthesis failed, falling back to native", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
		}
		native := tts.DefaultNativeSettings()
		if s.language != "" {
			native.Language = s.language
		}
		return &dto.SynthesizeSpeechResponse{
			UseNative: true,
			Native:    &native,
		}, nil
	}

	return &dto.SynthesizeSpeechResponse{
		Audio:       audio,
		ContentType: "audio/mpeg",
	}, nil
}

func (s *speechService) Stop(userId uuid.UUID) {
	s.mu.Lock()
	handle := s.inFlight[userId]
	delete(s.inFlight, userId)
	s.mu.Unlock()
	if handle != nil {
		handle.cancel()
	}
}

func (s *speechService) track(userId uuid.UUID, handle *synthHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A new request supersedes the previous one.
	if prev, ok := s.inFlight[userId]; ok {
		prev.cancel()
	}
	s.inFlight[userId] = handle
}

func (s *speechService) untrack(userId uuid.UUID, handle *synthHandle) {
	s.mu.Lock()
	if s.inFlight[userId] == handle {
		delete(s.inFlight, userId)
	}
	s.mu.Unlock()
	handle.cancel()
}
