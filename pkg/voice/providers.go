package voice

import (
	"context"
	"time"
)

// CaptureOptions configure audio acquisition for one recording session.
type CaptureOptions struct {
	EchoCancellation bool
	NoiseSuppression bool
	SampleRate       int
	ChunkInterval    time.Duration
}

// Recorder acquires an audio source (microphone or a client relaying one).
// Acquisition failure (permission denied, no device) must be returned as an
// error here; it is the only path that aborts a session start.
type Recorder interface {
	Record(ctx context.Context, opts CaptureOptions) (AudioStream, error)
}

type AudioStream interface {
	// Chunks yields buffered audio chunks, flushed at the capture interval.
	// The channel closes when the stream stops.
	Chunks() <-chan []byte
	Stop() error
}

// Recognizer produces a continuous transcription stream for an audio source.
type Recognizer interface {
	Listen(ctx context.Context, language string) (RecognitionStream, error)
}

// Result is one recognition hypothesis. Interim results (Final=false) are
// delivered but the session only retains final ones.
type Result struct {
	Text  string
	Final bool
}

type RecognitionStream interface {
	// Results closes when the recognizer ends, on its own or via Stop.
	Results() <-chan Result
	// Err reports the terminal error, valid once Results has closed.
	Err() error
	Stop() error
}

// ChunkSink receives buffered audio chunks. The default sink discards them;
// deployments that want raw-audio upload plug their own sink in here.
type ChunkSink interface {
	Consume(chunk []byte)
}

type discardSink struct{}

func (discardSink) Consume([]byte) {}

// DiscardSink drops all audio chunks.
func DiscardSink() ChunkSink {
	return discardSink{}
}
