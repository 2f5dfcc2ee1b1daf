package dto

import "reflecta-journal-be/pkg/tts"

type SynthesizeSpeechRequest struct {
	Text string `json:"text" validate:"required"`
}

// SynthesizeSpeechResponse carries either hosted audio or a directive to use
// the client's native speech engine. Exactly one of the two is populated.
type SynthesizeSpeechResponse struct {
	Audio       []byte              `json:"audio,omitempty"` // base64 in transit
	ContentType string              `json:"content_type,omitempty"`
	UseNative   bool                `json:"use_native"`
	Native      *tts.NativeSettings `json:"native,omitempty"`
}
