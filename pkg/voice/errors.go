package voice

import "errors"

// ErrorCode mirrors the recognition engine error taxonomy. Codes are
// advisory: none of them transitions a session out of recording on its own.
type ErrorCode string

const (
	CodePermissionDenied    ErrorCode = "not-allowed"
	CodeNoSpeech            ErrorCode = "no-speech"
	CodeAudioCapture        ErrorCode = "audio-capture"
	CodeNetwork             ErrorCode = "network"
	CodeServiceUnavailable  ErrorCode = "service-not-allowed"
	CodeAborted             ErrorCode = "aborted"
	CodeLanguageUnsupported ErrorCode = "language-not-supported"
)

var (
	ErrNotSupported     = errors.New("voice capture is not supported in this environment")
	ErrAlreadyRecording = errors.New("a recording session is already active")
)

const (
	msgNotSupported  = "Voice recording is not supported in your browser"
	msgAcquireFailed = "Failed to start recording. Check microphone permissions."
)

// RecognitionError carries the engine error code through a recognition stream.
type RecognitionError struct {
	Code  ErrorCode
	Cause error
}

func (e *RecognitionError) Error() string {
	if e.Cause != nil {
		return string(e.Code) + ": " + e.Cause.Error()
	}
	return string(e.Code)
}

func (e *RecognitionError) Unwrap() error {
	return e.Cause
}

// ErrorMessage maps an engine code to the human-readable message surfaced to
// the caller.
func ErrorMessage(code ErrorCode) string {
	switch code {
	case CodeNetwork:
		return "Network error during speech recognition. Please try again or use text input instead."
	case CodePermissionDenied:
		return "Microphone access denied. Please allow microphone usage in your browser settings."
	case CodeNoSpeech:
		return "No speech detected. Try speaking louder or closer to the microphone."
	case CodeAudioCapture:
		return "Failed to access microphone. Please check your microphone permissions."
	case CodeServiceUnavailable:
		return "Speech recognition service is unavailable. This might be a browser or network issue."
	case CodeAborted:
		return "Speech recognition was aborted. Please try again."
	case CodeLanguageUnsupported:
		return "Selected language is not supported. Please try English."
	default:
		return "Speech recognition error: " + string(code) + ". Please try using text input instead."
	}
}

func messageForError(err error) string {
	var recErr *RecognitionError
	if errors.As(err, &recErr) {
		return ErrorMessage(recErr.Code)
	}
	return "Speech recognition error: " + err.Error() + ". Please try using text input instead."
}
