package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesize_SendsProperRequest(t *testing.T) {
	var captured synthesizeRequest
	var gotPath, gotKey, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		gotAccept = r.Header.Get("Accept")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := NewElevenLabsClient("secret", "voice123", "")
	client.BaseURL = server.URL

	audio, err := client.Synthesize(context.Background(), "hello world")
	assert.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)

	assert.Equal(t, "/voice123", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "audio/mpeg", gotAccept)
	assert.Equal(t, "hello world", captured.Text)
	assert.Equal(t, defaultModelID, captured.ModelID)
	assert.Equal(t, defaultOutputFormat, captured.OutputFormat)
	assert.Equal(t, 0.5, captured.VoiceSettings.Stability)
	assert.True(t, captured.VoiceSettings.UseSpeakerBoost)
}

func TestSynthesize_EmptyText(t *testing.T) {
	client := NewElevenLabsClient("secret", "", "")
	_, err := client.Synthesize(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTextRequired)
}

func TestSynthesize_MissingAPIKey(t *testing.T) {
	client := NewElevenLabsClient("", "", "")
	_, err := client.Synthesize(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestSynthesize_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer server.Close()

	client := NewElevenLabsClient("secret", "", "")
	client.BaseURL = server.URL

	_, err := client.Synthesize(context.Background(), "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestDefaultNativeSettings(t *testing.T) {
	settings := DefaultNativeSettings()
	assert.Equal(t, "en-US", settings.Language)
	assert.Equal(t, 0.9, settings.Rate)
	assert.Equal(t, 1.0, settings.Pitch)
	assert.Equal(t, 0.8, settings.Volume)
}

func TestNewElevenLabsClientDefaults(t *testing.T) {
	client := NewElevenLabsClient("key", "", "")
	assert.Equal(t, defaultVoiceID, client.VoiceID)
	assert.Equal(t, defaultModelID, client.ModelID)
	assert.Equal(t, defaultBaseURL, client.BaseURL)
}
