package factory

import (
	"fmt"

	"reflecta-journal-be/pkg/llm"
	"reflecta-journal-be/pkg/llm/deepseek"
	"reflecta-journal-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "deepseek":
		if baseURL == "" {
			baseURL = "https://api.deepseek.com/v1" // Default
		}
		return deepseek.NewDeepSeekProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
