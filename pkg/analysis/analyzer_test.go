package analysis

import (
	"context"
	"errors"
	"testing"

	"reflecta-journal-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

// stubProvider returns a canned reply or error.
type stubProvider struct {
	reply    string
	err      error
	messages []llm.Message
}

func (p *stubProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	p.messages = messages
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestAnalyze_EmptyText(t *testing.T) {
	analyzer := NewAnalyzer(&stubProvider{})
	_, err := analyzer.Analyze(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrTextRequired)
}

func TestAnalyze_ValidReply(t *testing.T) {
	provider := &stubProvider{
		reply: `{"response": "That sounds like a lot to carry.", "moodAnalysis": {"mood": 2, "confidence": 0.9, "emotions": ["anxious"], "topics": ["work"]}}`,
	}
	analyzer := NewAnalyzer(provider)

	result, err := analyzer.Analyze(context.Background(), "I am overwhelmed at work", nil)
	assert.NoError(t, err)
	assert.Equal(t, "That sounds like a lot to carry.", result.Response)
	assert.Equal(t, 2, result.MoodAnalysis.Mood)
	assert.Equal(t, 0.9, result.MoodAnalysis.Confidence)
	assert.Equal(t, []string{"anxious"}, result.MoodAnalysis.Emotions)

	// System prompt first, user text last.
	assert.Equal(t, "system", provider.messages[0].Role)
	assert.Equal(t, "user", provider.messages[len(provider.messages)-1].Role)
	assert.Equal(t, "I am overwhelmed at work", provider.messages[len(provider.messages)-1].Content)
}

func TestAnalyze_HistoryIsForwarded(t *testing.T) {
	provider := &stubProvider{
		reply: `{"response": "ok", "moodAnalysis": {"mood": 3, "confidence": 0.5}}`,
	}
	analyzer := NewAnalyzer(provider)

	history := []llm.Message{
		{Role: "user", Content: "earlier line"},
		{Role: "assistant", Content: "earlier reply"},
	}
	_, err := analyzer.Analyze(context.Background(), "new line", history)
	assert.NoError(t, err)
	assert.Len(t, provider.messages, 4)
	assert.Equal(t, "earlier line", provider.messages[1].Content)
	assert.Equal(t, "earlier reply", provider.messages[2].Content)
}

func TestAnalyze_FencedJSON(t *testing.T) {
	provider := &stubProvider{
		reply: "Here you go:\n```json\n{\"response\": \"noted\", \"moodAnalysis\": {\"mood\": 4, \"confidence\": 0.7, \"emotions\": [\"calm\"], \"topics\": [\"life\"]}}\n```",
	}
	analyzer := NewAnalyzer(provider)

	result, err := analyzer.Analyze(context.Background(), "feeling fine", nil)
	assert.NoError(t, err)
	assert.Equal(t, "noted", result.Response)
	assert.Equal(t, 4, result.MoodAnalysis.Mood)
}

func TestAnalyze_ProviderErrorFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("timeout")}
	analyzer := NewAnalyzer(provider)

	result, err := analyzer.Analyze(context.Background(), "hello", nil)
	assert.NoError(t, err)
	assert.Equal(t, Fallback(), result)
}

func TestAnalyze_GarbageReplyFallsBack(t *testing.T) {
	for _, reply := range []string{
		"I cannot do that",
		`{"response": ""}`,
		`{"moodAnalysis": {"mood": 3}}`,
		"{broken json",
	} {
		analyzer := NewAnalyzer(&stubProvider{reply: reply})
		result, err := analyzer.Analyze(context.Background(), "hello", nil)
		assert.NoError(t, err)
		assert.Equal(t, Fallback(), result, "reply %q should fall back", reply)
	}
}

func TestAnalyze_ClampsOutOfRangeValues(t *testing.T) {
	provider := &stubProvider{
		reply: `{"response": "ok", "moodAnalysis": {"mood": 9, "confidence": 1.7}}`,
	}
	analyzer := NewAnalyzer(provider)

	result, err := analyzer.Analyze(context.Background(), "hello", nil)
	assert.NoError(t, err)
	assert.Equal(t, 5, result.MoodAnalysis.Mood)
	assert.Equal(t, 1.0, result.MoodAnalysis.Confidence)
	assert.Equal(t, []string{"neutral"}, result.MoodAnalysis.Emotions)
	assert.Equal(t, []string{"general"}, result.MoodAnalysis.Topics)
}
