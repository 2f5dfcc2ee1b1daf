package dto

// StartVoiceRequest reports the client's capture capabilities; the session is
// only supported when the client can both record and recognize.
type StartVoiceRequest struct {
	HasMediaRecorder     bool `json:"has_media_recorder"`
	HasSpeechRecognition bool `json:"has_speech_recognition"`
}

type VoiceStateResponse struct {
	Supported      bool   `json:"supported"`
	Recording      bool   `json:"recording"`
	Processing     bool   `json:"processing"`
	Transcript     string `json:"transcript"`
	Error          string `json:"error,omitempty"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

// VoiceFrame is one inbound websocket frame from the capture client.
type VoiceFrame struct {
	Type  string `json:"type"` // "chunk" | "result" | "error" | "end"
	Chunk []byte `json:"chunk,omitempty"`
	Text  string `json:"text,omitempty"`
	Final bool   `json:"final,omitempty"`
	Code  string `json:"code,omitempty"`
}
