package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"reflecta-journal-be/internal/config"
	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/pkg/logger"
	"reflecta-journal-be/internal/repository/memory"
	"reflecta-journal-be/internal/websocket"
	"reflecta-journal-be/pkg/voice"

	"github.com/google/uuid"
)

type IVoiceService interface {
	Start(ctx context.Context, userId uuid.UUID, req *dto.StartVoiceRequest) (*dto.VoiceStateResponse, error)
	Stop(ctx context.Context, userId uuid.UUID) (*dto.VoiceStateResponse, error)
	State(userId uuid.UUID) *dto.VoiceStateResponse
	ClearTranscript(userId uuid.UUID) *dto.VoiceStateResponse

	// HandleFrame processes one inbound websocket frame from the capture
	// client: audio chunks, recognition results, engine errors, engine end.
	HandleFrame(userId uuid.UUID, payload []byte)

	// Shutdown tears the user's capture down, used when the transport drops.
	Shutdown(userId uuid.UUID)
}

type voiceService struct {
	sessions *memory.VoiceSessionRepository
	hub      *websocket.Hub
	cfg      config.VoiceConfig
	log      logger.ILogger
}

func NewVoiceService(
	sessions *memory.VoiceSessionRepository,
	hub *websocket.Hub,
	cfg config.VoiceConfig,
	log logger.ILogger,
) IVoiceService {
	return &voiceService{
		sessions: sessions,
		hub:      hub,
		cfg:      cfg,
		log:      log,
	}
}

func (s *voiceService) Start(ctx context.Context, userId uuid.UUID, req *dto.StartVoiceRequest) (*dto.VoiceStateResponse, error) {
	handle, found := s.sessions.Get(userId.String())
	if found && handle.Session.Snapshot().Recording {
		return s.stateOf(handle), voice.ErrAlreadyRecording
	}

	relay := voice.NewRelayProvider()
	var recorder voice.Recorder
	var recognizer voice.Recognizer
	if req.HasMediaRecorder {
		recorder = relay
	}
	if req.HasSpeechRecognition {
		recognizer = relay
	}

	session := voice.NewSession(recorder, recognizer, voice.Options{
		Language:              s.cfg.Language,
		SecureContext:         s.cfg.SecureContext,
		ChunkInterval:         time.Duration(s.cfg.ChunkIntervalSeconds) * time.Second,
		SettleDelay:           time.Duration(s.cfg.SettleDelaySeconds) * time.Second,
		MaxRecognizerRestarts: s.cfg.MaxRecognizerRestarts,
		OnUpdate: func(snap voice.Snapshot) {
			s.pushState(userId, snap)
		},
	})

	handle = &memory.VoiceSession{Session: session, Relay: relay}
	s.sessions.Save(userId.String(), handle)

	if err := session.Start(ctx); err != nil {
		// The session stays addressable so the client can read the error
		// state and retry.
		s.log.Warn("voice", "capture start failed", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return s.stateOf(handle), err
	}

	return s.stateOf(handle), nil
}

func (s *voiceService) Stop(ctx context.Context, userId uuid.UUID) (*dto.VoiceStateResponse, error) {
	handle, found := s.sessions.Get(userId.String())
	if !found {
		return nil, errors.New("no active voice session")
	}

	handle.Session.Stop(ctx)
	return s.stateOf(handle), nil
}

func (s *voiceService) State(userId uuid.UUID) *dto.VoiceStateResponse {
	handle, found := s.sessions.Get(userId.String())
	if !found {
		return &dto.VoiceStateResponse{}
	}
	return s.stateOf(handle)
}

func (s *voiceService) ClearTranscript(userId uuid.UUID) *dto.VoiceStateResponse {
	handle, found := s.sessions.Get(userId.String())
	if !found {
		return &dto.VoiceStateResponse{}
	}
	handle.Session.ClearTranscript()
	return s.stateOf(handle)
}

func (s *voiceService) HandleFrame(userId uuid.UUID, payload []byte) {
	var frame dto.VoiceFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		s.log.Warn("voice", "dropping malformed frame", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return
	}

	handle, found := s.sessions.Get(userId.String())
	if !found {
		return
	}

	switch frame.Type {
	case "chunk":
		handle.Relay.PushChunk(frame.Chunk)
	case "result":
		handle.Relay.PushResult(frame.Text, frame.Final)
	case "error":
		handle.Relay.PushError(voice.ErrorCode(frame.Code))
	case "end":
		handle.Relay.EndRecognition()
	default:
		s.log.Warn("voice", "unknown frame type", map[string]interface{}{
			"user_id": userId.String(),
			"type":    frame.Type,
		})
	}
}

func (s *voiceService) Shutdown(userId uuid.UUID) {
	handle, found := s.sessions.Get(userId.String())
	if !found {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	handle.Session.Stop(ctx)
	handle.Relay.Close()
	s.sessions.Delete(userId.String())
}

func (s *voiceService) stateOf(handle *memory.VoiceSession) *dto.VoiceStateResponse {
	snap := handle.Session.Snapshot()
	return &dto.VoiceStateResponse{
		Supported:      handle.Session.Supported(),
		Recording:      snap.Recording,
		Processing:     snap.Processing,
		Transcript:     snap.Transcript,
		Error:          snap.Error,
		ElapsedSeconds: snap.ElapsedSeconds,
	}
}

func (s *voiceService) pushState(userId uuid.UUID, snap voice.Snapshot) {
	if s.hub == nil {
		return
	}
	s.hub.Send(userId, "voice_state", dto.VoiceStateResponse{
		Supported:      true,
		Recording:      snap.Recording,
		Processing:     snap.Processing,
		Transcript:     snap.Transcript,
		Error:          snap.Error,
		ElapsedSeconds: snap.ElapsedSeconds,
	})
}
