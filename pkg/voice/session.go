package voice

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Snapshot is the externally visible state of a capture session.
type Snapshot struct {
	Recording      bool   `json:"recording"`
	Processing     bool   `json:"processing"`
	Transcript     string `json:"transcript"`
	Error          string `json:"error,omitempty"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

type Options struct {
	Language              string
	SecureContext         bool
	ChunkInterval         time.Duration
	TickInterval          time.Duration
	SettleDelay           time.Duration
	MaxRecognizerRestarts int
	RestartBackoff        time.Duration
	Sink                  ChunkSink
	OnUpdate              func(Snapshot)
}

func (o *Options) withDefaults() {
	if o.Language == "" {
		o.Language = "en-US"
	}
	if o.ChunkInterval <= 0 {
		o.ChunkInterval = time.Second
	}
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = time.Second
	}
	if o.MaxRecognizerRestarts <= 0 {
		o.MaxRecognizerRestarts = 5
	}
	if o.RestartBackoff <= 0 {
		o.RestartBackoff = 250 * time.Millisecond
	}
	if o.Sink == nil {
		o.Sink = discardSink{}
	}
}

// Session drives one voice capture: audio chunking, continuous recognition
// with bounded restarts, an elapsed-time ticker and a settle delay on stop.
type Session struct {
	opts       Options
	recorder   Recorder
	recognizer Recognizer

	mu         sync.Mutex
	recording  bool
	processing bool
	transcript string
	errMsg     string
	elapsed    int

	stopRequested bool
	cancel        context.CancelFunc
	audio         AudioStream
	recog         RecognitionStream
}

func NewSession(recorder Recorder, recognizer Recognizer, opts Options) *Session {
	opts.withDefaults()
	return &Session{
		opts:       opts,
		recorder:   recorder,
		recognizer: recognizer,
	}
}

// Supported reports whether capture can run right now. It is recomputed on
// every call rather than cached at construction.
func (s *Session) Supported() bool {
	return s.opts.SecureContext && s.recorder != nil && s.recognizer != nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Recording:      s.recording,
		Processing:     s.processing,
		Transcript:     s.transcript,
		Error:          s.errMsg,
		ElapsedSeconds: s.elapsed,
	}
}

// Start acquires the audio source and begins capture. On acquisition failure
// the session stays out of recording with a user-facing error set.
func (s *Session) Start(ctx context.Context) error {
	if !s.Supported() {
		s.setError(msgNotSupported)
		return ErrNotSupported
	}

	s.mu.Lock()
	if s.recording {
		s.mu.Unlock()
		return ErrAlreadyRecording
	}
	s.mu.Unlock()

	audio, err := s.recorder.Record(ctx, CaptureOptions{
		EchoCancellation: true,
		NoiseSuppression: true,
		SampleRate:       44100,
		ChunkInterval:    s.opts.ChunkInterval,
	})
	if err != nil {
		s.setError(msgAcquireFailed)
		return fmt.Errorf("failed to acquire audio source: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.recording = true
	s.processing = false
	s.transcript = ""
	s.errMsg = ""
	s.elapsed = 0
	s.stopRequested = false
	s.cancel = cancel
	s.audio = audio
	s.mu.Unlock()
	s.publish()

	go s.pumpChunks(audio)
	go s.runRecognizer(runCtx)
	go s.runTimer(runCtx)
	return nil
}

// Stop ends capture and blocks through the settle delay so a trailing
// recognition result can land before the transcript is read. The context
// bounds the wait.
func (s *Session) Stop(ctx context.Context) {
	s.mu.Lock()
	if !s.recording && !s.processing {
		s.mu.Unlock()
		return
	}
	s.recording = false
	s.processing = true
	s.stopRequested = true
	cancel := s.cancel
	audio := s.audio
	recog := s.recog
	s.cancel = nil
	s.audio = nil
	s.recog = nil
	s.mu.Unlock()
	s.publish()

	if audio != nil {
		_ = audio.Stop()
	}
	if recog != nil {
		_ = recog.Stop()
	}
	if cancel != nil {
		cancel()
	}

	timer := time.NewTimer(s.opts.SettleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}

	s.mu.Lock()
	s.processing = false
	s.mu.Unlock()
	s.publish()
}

// ClearTranscript resets transcript, error and elapsed time. Safe to call in
// any state, including repeatedly.
func (s *Session) ClearTranscript() {
	s.mu.Lock()
	s.transcript = ""
	s.errMsg = ""
	s.elapsed = 0
	s.mu.Unlock()
	s.publish()
}

func (s *Session) pumpChunks(audio AudioStream) {
	for chunk := range audio.Chunks() {
		s.opts.Sink.Consume(chunk)
	}
}

func (s *Session) runTimer(ctx context.Context) {
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.recording {
				s.mu.Unlock()
				return
			}
			s.elapsed++
			s.mu.Unlock()
			s.publish()
		}
	}
}

// runRecognizer keeps a recognition stream alive for the whole recording.
// Engines end streams on silence, so a natural end while still recording
// triggers a restart, bounded and backed off so a hard failure cannot spin.
// Recognition failures never stop the recording itself; audio capture
// continues and the error is surfaced as advisory state.
func (s *Session) runRecognizer(ctx context.Context) {
	restarts := 0
	for {
		stream, err := s.recognizer.Listen(ctx, s.opts.Language)
		if err != nil {
			s.setError(messageForError(err))
			return
		}

		s.mu.Lock()
		if s.stopRequested {
			s.mu.Unlock()
			_ = stream.Stop()
			return
		}
		s.recog = stream
		s.mu.Unlock()

		for res := range stream.Results() {
			if !res.Final || strings.TrimSpace(res.Text) == "" {
				continue
			}
			s.mu.Lock()
			s.transcript = res.Text
			s.mu.Unlock()
			s.publish()
			// Progress proves the engine recovered; start counting over.
			restarts = 0
		}

		if streamErr := stream.Err(); streamErr != nil {
			s.setError(messageForError(streamErr))
		}

		s.mu.Lock()
		done := s.stopRequested || !s.recording
		s.recog = nil
		s.mu.Unlock()
		if done {
			return
		}

		restarts++
		if restarts > s.opts.MaxRecognizerRestarts {
			s.setError(ErrorMessage(CodeServiceUnavailable))
			return
		}

		backoff := s.opts.RestartBackoff << (restarts - 1)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	s.publish()
}

func (s *Session) publish() {
	if s.opts.OnUpdate != nil {
		s.opts.OnUpdate(s.Snapshot())
	}
}
