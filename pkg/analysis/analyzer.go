package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"reflecta-journal-be/internal/pkg/moodutil"
	"reflecta-journal-be/pkg/llm"
)

var ErrTextRequired = errors.New("text is required for analysis")

// MoodAnalysis is the structured mood read of one piece of user text.
type MoodAnalysis struct {
	Mood       int      `json:"mood"`
	Confidence float64  `json:"confidence"`
	Emotions   []string `json:"emotions"`
	Topics     []string `json:"topics"`
}

// Result pairs the conversational reply with the mood read. Both are always
// populated: any model failure resolves to Fallback().
type Result struct {
	Response     string       `json:"response"`
	MoodAnalysis MoodAnalysis `json:"moodAnalysis"`
}

const systemPrompt = `You are a compassionate AI companion inside a personal reflection journal. The user shares thoughts and feelings with you; respond with warmth, without judgement, and help them reflect.

Analyze the emotional content of the user's message and respond ONLY with valid JSON in exactly this shape, with no other text:
{"response": "your empathetic reply to the user", "moodAnalysis": {"mood": 3, "confidence": 0.8, "emotions": ["calm"], "topics": ["work"]}}

Rules:
- mood is an integer from 1 (very negative) to 5 (very positive)
- confidence is a number between 0.0 and 1.0
- emotions is a short list of lowercase emotion words
- topics is a short list of lowercase topic words`

// Fallback is the deterministic result used whenever the model is
// unreachable or returns something unusable. Callers never see an error from
// analysis itself; a degraded model turns into this neutral read.
func Fallback() *Result {
	return &Result{
		Response: "Thank you for sharing your thoughts with me. I'm here to listen and help you reflect on your feelings.",
		MoodAnalysis: MoodAnalysis{
			Mood:       moodutil.MoodNeutral,
			Confidence: 0.5,
			Emotions:   []string{"neutral"},
			Topics:     []string{"general"},
		},
	}
}

type Analyzer struct {
	provider llm.LLMProvider
}

func NewAnalyzer(provider llm.LLMProvider) *Analyzer {
	return &Analyzer{
		provider: provider,
	}
}

// Analyze runs the model over the user text plus recent conversation context.
// The only error it returns is ErrTextRequired; every model-side failure
// degrades to Fallback().
func (a *Analyzer) Analyze(ctx context.Context, text string, history []llm.Message) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: text})

	raw, err := a.provider.Chat(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(1000),
	)
	if err != nil {
		return Fallback(), nil
	}

	result, ok := parseResult(raw)
	if !ok {
		return Fallback(), nil
	}
	return result, nil
}

func parseResult(raw string) (*Result, bool) {
	payload := extractJSON(raw)
	if payload == "" {
		return nil, false
	}

	var parsed struct {
		Response     string        `json:"response"`
		MoodAnalysis *MoodAnalysis `json:"moodAnalysis"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, false
	}
	if parsed.Response == "" || parsed.MoodAnalysis == nil {
		return nil, false
	}

	ma := *parsed.MoodAnalysis
	ma.Mood = moodutil.Clamp(ma.Mood)
	if ma.Confidence < 0 {
		ma.Confidence = 0
	}
	if ma.Confidence > 1 {
		ma.Confidence = 1
	}
	if len(ma.Emotions) == 0 {
		ma.Emotions = []string{"neutral"}
	}
	if len(ma.Topics) == 0 {
		ma.Topics = []string{"general"}
	}

	return &Result{Response: parsed.Response, MoodAnalysis: ma}, true
}

// extractJSON cuts the outermost JSON object out of a model reply, tolerating
// markdown fences and prose around it.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
