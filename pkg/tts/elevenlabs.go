package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrTextRequired = errors.New("text is required for speech synthesis")
	ErrNoAPIKey     = errors.New("speech synthesis api key is not configured")
)

const (
	defaultBaseURL      = "https://api.elevenlabs.io/v1/text-to-speech"
	defaultVoiceID      = "21m00Tcm4TlvDq8ikWAM"
	defaultModelID      = "eleven_multilingual_v2"
	defaultOutputFormat = "mp3_44100_128"
)

type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	OutputFormat  string        `json:"output_format"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// ElevenLabsClient synthesizes speech through the ElevenLabs HTTP API.
type ElevenLabsClient struct {
	APIKey  string
	VoiceID string
	ModelID string
	BaseURL string
	Client  *http.Client
}

func NewElevenLabsClient(apiKey, voiceID, modelID string) *ElevenLabsClient {
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	if modelID == "" {
		modelID = defaultModelID
	}
	return &ElevenLabsClient{
		APIKey:  apiKey,
		VoiceID: voiceID,
		ModelID: modelID,
		BaseURL: defaultBaseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Synthesize returns the MP3 audio for the given text.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	payload := synthesizeRequest{
		Text:         text,
		ModelID:      c.ModelID,
		OutputFormat: defaultOutputFormat,
		VoiceSettings: VoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
			Style:           0.0,
			UseSpeakerBoost: true,
		},
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.BaseURL + "/" + c.VoiceID
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevenlabs error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	return bodyBytes, nil
}
