package service

import (
	"context"
	"testing"
	"time"

	"reflecta-journal-be/internal/config"
	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/repository/memory"
	"reflecta-journal-be/pkg/voice"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newVoiceServiceForTest() IVoiceService {
	return NewVoiceService(
		memory.NewVoiceSessionRepository(),
		nil,
		config.VoiceConfig{
			Language:              "en-US",
			SecureContext:         true,
			ChunkIntervalSeconds:  1,
			SettleDelaySeconds:    1,
			MaxRecognizerRestarts: 5,
		},
		noopLogger{},
	)
}

func fullCaps() *dto.StartVoiceRequest {
	return &dto.StartVoiceRequest{HasMediaRecorder: true, HasSpeechRecognition: true}
}

func voiceWaitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting: %s", msg)
}

func TestVoiceService_StartWithoutCapabilities(t *testing.T) {
	svc := newVoiceServiceForTest()
	userId := uuid.New()

	state, err := svc.Start(context.Background(), userId, &dto.StartVoiceRequest{})
	assert.ErrorIs(t, err, voice.ErrNotSupported)
	assert.False(t, state.Supported)
	assert.False(t, state.Recording)
	assert.NotEmpty(t, state.Error)

	// The failed session stays addressable for state reads.
	assert.NotEmpty(t, svc.State(userId).Error)
}

func TestVoiceService_CaptureRoundTrip(t *testing.T) {
	svc := newVoiceServiceForTest()
	userId := uuid.New()

	state, err := svc.Start(context.Background(), userId, fullCaps())
	assert.NoError(t, err)
	assert.True(t, state.Supported)
	assert.True(t, state.Recording)

	// Starting again while recording is rejected.
	_, err = svc.Start(context.Background(), userId, fullCaps())
	assert.ErrorIs(t, err, voice.ErrAlreadyRecording)

	// Frames from the capture client drive the transcript.
	voiceWaitFor(t, func() bool {
		svc.HandleFrame(userId, []byte(`{"type":"result","text":"hello from voice","final":true}`))
		return svc.State(userId).Transcript == "hello from voice"
	}, "relayed transcript")

	stopped, err := svc.Stop(context.Background(), userId)
	assert.NoError(t, err)
	assert.False(t, stopped.Recording)
	assert.False(t, stopped.Processing)
	assert.Equal(t, "hello from voice", stopped.Transcript)

	cleared := svc.ClearTranscript(userId)
	assert.Empty(t, cleared.Transcript)
}

func TestVoiceService_MalformedFramesAreDropped(t *testing.T) {
	svc := newVoiceServiceForTest()
	userId := uuid.New()

	_, err := svc.Start(context.Background(), userId, fullCaps())
	assert.NoError(t, err)

	svc.HandleFrame(userId, []byte(`{broken`))
	svc.HandleFrame(userId, []byte(`{"type":"mystery"}`))
	assert.True(t, svc.State(userId).Recording)

	svc.Shutdown(userId)
}

func TestVoiceService_StopWithoutSession(t *testing.T) {
	svc := newVoiceServiceForTest()
	_, err := svc.Stop(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestVoiceService_StateWithoutSession(t *testing.T) {
	svc := newVoiceServiceForTest()
	state := svc.State(uuid.New())
	assert.False(t, state.Recording)
	assert.Empty(t, state.Transcript)
}

func TestVoiceService_ShutdownRemovesSession(t *testing.T) {
	svc := newVoiceServiceForTest()
	userId := uuid.New()

	_, err := svc.Start(context.Background(), userId, fullCaps())
	assert.NoError(t, err)

	svc.Shutdown(userId)
	_, err = svc.Stop(context.Background(), userId)
	assert.Error(t, err, "session is gone after shutdown")
}
