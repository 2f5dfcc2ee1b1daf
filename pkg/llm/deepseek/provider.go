package deepseek

import (
	"context"
	"fmt"

	"reflecta-journal-be/pkg/llm"

	openai "github.com/sashabaranov/go-openai"
)

// DeepSeekProvider talks to the DeepSeek chat completion API, which is
// OpenAI-compatible, through the go-openai client.
type DeepSeekProvider struct {
	ModelName string
	Client    *openai.Client
}

var _ llm.LLMProvider = &DeepSeekProvider{}

func NewDeepSeekProvider(apiKey, baseURL, modelName string) *DeepSeekProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if modelName == "" {
		modelName = "deepseek-chat"
	}
	return &DeepSeekProvider{
		ModelName: modelName,
		Client:    openai.NewClientWithConfig(cfg),
	}
}

func (p *DeepSeekProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = openai.ChatMessageRoleAssistant
		}
		messages[i] = openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	resp, err := p.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("deepseek request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("deepseek returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *DeepSeekProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
