package voice

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testOptions() Options {
	return Options{
		SecureContext:         true,
		ChunkInterval:         5 * time.Millisecond,
		TickInterval:          5 * time.Millisecond,
		SettleDelay:           10 * time.Millisecond,
		MaxRecognizerRestarts: 2,
		RestartBackoff:        time.Millisecond,
	}
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting: %s", msg)
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, CaptureOptions) (AudioStream, error) {
	return nil, errors.New("device busy")
}

// endingRecognizer hands out streams that end immediately, the way an engine
// behaves on continuous silence.
type endingRecognizer struct {
	listens int64
}

func (r *endingRecognizer) Listen(context.Context, string) (RecognitionStream, error) {
	atomic.AddInt64(&r.listens, 1)
	stream := newRelayRecognitionStream()
	stream.end(nil)
	return stream, nil
}

func TestSession_UnsupportedEnvironment(t *testing.T) {
	relay := NewRelayProvider()

	cases := []struct {
		name       string
		recorder   Recorder
		recognizer Recognizer
		secure     bool
	}{
		{"insecure context", relay, relay, false},
		{"no recorder", nil, relay, true},
		{"no recognizer", relay, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := testOptions()
			opts.SecureContext = tc.secure
			session := NewSession(tc.recorder, tc.recognizer, opts)

			assert.False(t, session.Supported())
			err := session.Start(context.Background())
			assert.ErrorIs(t, err, ErrNotSupported)

			snap := session.Snapshot()
			assert.False(t, snap.Recording)
			assert.Equal(t, msgNotSupported, snap.Error)
		})
	}
}

func TestSession_AcquireFailure(t *testing.T) {
	relay := NewRelayProvider()
	session := NewSession(failingRecorder{}, relay, testOptions())

	err := session.Start(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotSupported)

	snap := session.Snapshot()
	assert.False(t, snap.Recording)
	assert.Equal(t, msgAcquireFailed, snap.Error)
}

func TestSession_FinalResultsOnly(t *testing.T) {
	relay := NewRelayProvider()
	session := NewSession(relay, relay, testOptions())

	assert.NoError(t, session.Start(context.Background()))
	defer session.Stop(context.Background())

	// The recognizer attaches asynchronously; keep pushing until the final
	// lands.
	waitFor(t, func() bool {
		relay.PushResult("hel", false)
		relay.PushResult("hello world", true)
		return session.Snapshot().Transcript == "hello world"
	}, "final transcript")

	// Interim and blank results never overwrite the retained final.
	relay.PushResult("hello wor", false)
	relay.PushResult("   ", true)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "hello world", session.Snapshot().Transcript)
}

func TestSession_StartWhileRecording(t *testing.T) {
	relay := NewRelayProvider()
	session := NewSession(relay, relay, testOptions())

	assert.NoError(t, session.Start(context.Background()))
	defer session.Stop(context.Background())

	err := session.Start(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRecording)
}

func TestSession_StopSettles(t *testing.T) {
	relay := NewRelayProvider()
	session := NewSession(relay, relay, testOptions())

	assert.NoError(t, session.Start(context.Background()))
	assert.True(t, session.Snapshot().Recording)

	session.Stop(context.Background())
	snap := session.Snapshot()
	assert.False(t, snap.Recording)
	assert.False(t, snap.Processing)

	// Stopping again is a no-op.
	session.Stop(context.Background())
}

func TestSession_ElapsedTicks(t *testing.T) {
	relay := NewRelayProvider()
	session := NewSession(relay, relay, testOptions())

	assert.NoError(t, session.Start(context.Background()))
	defer session.Stop(context.Background())

	waitFor(t, func() bool {
		return session.Snapshot().ElapsedSeconds >= 1
	}, "elapsed tick")
}

func TestSession_ClearTranscript(t *testing.T) {
	relay := NewRelayProvider()
	session := NewSession(relay, relay, testOptions())

	assert.NoError(t, session.Start(context.Background()))
	waitFor(t, func() bool {
		relay.PushResult("something", true)
		return session.Snapshot().Transcript == "something"
	}, "transcript set")
	session.Stop(context.Background())

	session.ClearTranscript()
	snap := session.Snapshot()
	assert.Empty(t, snap.Transcript)
	assert.Empty(t, snap.Error)
	assert.Equal(t, 0, snap.ElapsedSeconds)

	// Clearing an already clean session is fine.
	session.ClearTranscript()
}

func TestSession_RecognitionErrorIsAdvisory(t *testing.T) {
	relay := NewRelayProvider()
	session := NewSession(relay, relay, testOptions())

	assert.NoError(t, session.Start(context.Background()))
	defer session.Stop(context.Background())

	// The recognizer attaches asynchronously; the error must land on an
	// attached stream or the relay drops it.
	waitFor(t, func() bool {
		relay.mu.Lock()
		defer relay.mu.Unlock()
		return relay.recog != nil
	}, "recognizer attached")

	relay.PushError(CodeNetwork)
	waitFor(t, func() bool {
		return session.Snapshot().Error == ErrorMessage(CodeNetwork)
	}, "network error surfaced")

	// The recording itself survives, and a fresh stream keeps transcribing.
	assert.True(t, session.Snapshot().Recording)
	waitFor(t, func() bool {
		relay.PushResult("recovered", true)
		return session.Snapshot().Transcript == "recovered"
	}, "transcript after restart")
}

func TestSession_RestartsAreBounded(t *testing.T) {
	relay := NewRelayProvider()
	recognizer := &endingRecognizer{}
	session := NewSession(relay, recognizer, testOptions())

	assert.NoError(t, session.Start(context.Background()))
	defer session.Stop(context.Background())

	waitFor(t, func() bool {
		return session.Snapshot().Error == ErrorMessage(CodeServiceUnavailable)
	}, "restart budget exhausted")

	// Initial attempt plus the restart budget, nothing beyond.
	assert.LessOrEqual(t, atomic.LoadInt64(&recognizer.listens), int64(3))
	assert.True(t, session.Snapshot().Recording, "audio capture keeps running")
}
