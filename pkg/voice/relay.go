package voice

import (
	"context"
	"sync"
)

// RelayProvider adapts a remote capture client into the Recorder and
// Recognizer interfaces. The client owns the actual microphone and speech
// engine and relays chunks, results and errors over its transport; the
// provider pushes them into the streams the session consumes.
type RelayProvider struct {
	mu    sync.Mutex
	audio *relayAudioStream
	recog *relayRecognitionStream
}

func NewRelayProvider() *RelayProvider {
	return &RelayProvider{}
}

func (p *RelayProvider) Record(_ context.Context, _ CaptureOptions) (AudioStream, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	stream := newRelayAudioStream()
	p.audio = stream
	return stream, nil
}

func (p *RelayProvider) Listen(_ context.Context, _ string) (RecognitionStream, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	stream := newRelayRecognitionStream()
	p.recog = stream
	return stream, nil
}

// PushChunk feeds one audio chunk from the client. Chunks are dropped when
// the sink falls behind.
func (p *RelayProvider) PushChunk(chunk []byte) {
	p.mu.Lock()
	stream := p.audio
	p.mu.Unlock()
	if stream != nil {
		stream.push(chunk)
	}
}

// PushResult feeds one recognition hypothesis from the client engine.
func (p *RelayProvider) PushResult(text string, final bool) {
	p.mu.Lock()
	stream := p.recog
	p.mu.Unlock()
	if stream != nil {
		stream.push(Result{Text: text, Final: final})
	}
}

// PushError terminates the current recognition stream with an engine error
// code. The session decides whether to restart.
func (p *RelayProvider) PushError(code ErrorCode) {
	p.mu.Lock()
	stream := p.recog
	p.recog = nil
	p.mu.Unlock()
	if stream != nil {
		stream.fail(&RecognitionError{Code: code})
	}
}

// EndRecognition signals a natural engine end (silence timeout). While the
// session is still recording it will start a fresh stream.
func (p *RelayProvider) EndRecognition() {
	p.mu.Lock()
	stream := p.recog
	p.recog = nil
	p.mu.Unlock()
	if stream != nil {
		stream.end(nil)
	}
}

// Close tears down both streams, used when the client transport drops.
func (p *RelayProvider) Close() {
	p.mu.Lock()
	audio := p.audio
	recog := p.recog
	p.audio = nil
	p.recog = nil
	p.mu.Unlock()
	if audio != nil {
		_ = audio.Stop()
	}
	if recog != nil {
		recog.end(nil)
	}
}

type relayAudioStream struct {
	chunks chan []byte
	once   sync.Once
}

func newRelayAudioStream() *relayAudioStream {
	return &relayAudioStream{
		chunks: make(chan []byte, 64),
	}
}

func (s *relayAudioStream) Chunks() <-chan []byte {
	return s.chunks
}

func (s *relayAudioStream) Stop() error {
	s.once.Do(func() {
		close(s.chunks)
	})
	return nil
}

func (s *relayAudioStream) push(chunk []byte) {
	defer func() {
		// push racing Stop loses; a dropped trailing chunk is fine.
		_ = recover()
	}()
	select {
	case s.chunks <- chunk:
	default:
	}
}

type relayRecognitionStream struct {
	results chan Result
	once    sync.Once

	mu  sync.Mutex
	err error
}

func newRelayRecognitionStream() *relayRecognitionStream {
	return &relayRecognitionStream{
		results: make(chan Result, 16),
	}
}

func (s *relayRecognitionStream) Results() <-chan Result {
	return s.results
}

func (s *relayRecognitionStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *relayRecognitionStream) Stop() error {
	s.end(nil)
	return nil
}

func (s *relayRecognitionStream) push(res Result) {
	defer func() {
		_ = recover()
	}()
	select {
	case s.results <- res:
	default:
	}
}

func (s *relayRecognitionStream) fail(err error) {
	s.end(err)
}

func (s *relayRecognitionStream) end(err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.results)
	})
}
