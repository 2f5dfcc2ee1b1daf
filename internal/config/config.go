package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Speech   SpeechConfig
	Voice    VoiceConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	Timezone           string
	AnalyzeEntryTopic  string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	DeepSeek   string
	ElevenLabs string
}

type AIConfig struct {
	LLMProvider string // "deepseek" or "ollama"
	LLMModel    string
	BaseURL     string // OpenAI-compatible endpoint used by the deepseek provider
	OllamaURL   string
}

type SpeechConfig struct {
	VoiceID string
	ModelID string
}

type VoiceConfig struct {
	Language              string
	SecureContext         bool
	ChunkIntervalSeconds  int
	SettleDelaySeconds    int
	MaxRecognizerRestarts int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			Timezone:           getEnv("APP_TIMEZONE", "Local"),
			AnalyzeEntryTopic:  getEnv("ANALYZE_ENTRY_MOOD_TOPIC_NAME", "ANALYZE_ENTRY_MOOD"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			DeepSeek:   getEnv("DEEPSEEK_API_KEY", ""),
			ElevenLabs: getEnv("ELEVENLABS_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "deepseek"),
			LLMModel:    getEnv("LLM_MODEL", "deepseek-chat"),
			BaseURL:     getEnv("LLM_BASE_URL", "https://api.deepseek.com/v1"),
			OllamaURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Speech: SpeechConfig{
			VoiceID: getEnv("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
			ModelID: getEnv("ELEVENLABS_MODEL_ID", "eleven_multilingual_v2"),
		},
		Voice: VoiceConfig{
			Language:              getEnv("VOICE_LANGUAGE", "en-US"),
			SecureContext:         getEnvAsBool("VOICE_SECURE_CONTEXT", true),
			ChunkIntervalSeconds:  getEnvAsInt("VOICE_CHUNK_INTERVAL_SECONDS", 1),
			SettleDelaySeconds:    getEnvAsInt("VOICE_SETTLE_DELAY_SECONDS", 1),
			MaxRecognizerRestarts: getEnvAsInt("VOICE_MAX_RECOGNIZER_RESTARTS", 5),
		},
	}
}

// Location resolves the timezone used for calendar-day bucketing.
// Absence of the key falls back to the host local zone, never UTC.
func (c *Config) Location() *time.Location {
	if c.App.Timezone == "" || c.App.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		log.Printf("Warn: invalid APP_TIMEZONE %q, falling back to Local: %v", c.App.Timezone, err)
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
