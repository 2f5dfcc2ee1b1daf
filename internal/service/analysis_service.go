package service

import (
	"context"

	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/pkg/analysis"
	"reflecta-journal-be/pkg/llm"

	"github.com/google/uuid"
)

type IAnalysisService interface {
	AnalyzeText(ctx context.Context, userId uuid.UUID, req *dto.AnalyzeTextRequest) (*dto.AnalyzeTextResponse, error)
}

type analysisService struct {
	analyzer       *analysis.Analyzer
	historyService IChatHistoryService
}

func NewAnalysisService(analyzer *analysis.Analyzer, historyService IChatHistoryService) IAnalysisService {
	return &analysisService{
		analyzer:       analyzer,
		historyService: historyService,
	}
}

// AnalyzeText scores a piece of text with recent conversation lines as
// context. It never fails on model errors; those resolve to the neutral
// fallback inside the analyzer.
func (s *analysisService) AnalyzeText(ctx context.Context, userId uuid.UUID, req *dto.AnalyzeTextRequest) (*dto.AnalyzeTextResponse, error) {
	history := s.recentContext(ctx, userId)

	result, err := s.analyzer.Analyze(ctx, req.Text, history)
	if err != nil {
		return nil, err
	}

	return &dto.AnalyzeTextResponse{
		Response:     result.Response,
		MoodAnalysis: result.MoodAnalysis,
	}, nil
}

func (s *analysisService) recentContext(ctx context.Context, userId uuid.UUID) []llm.Message {
	if s.historyService == nil {
		return nil
	}
	recent, err := s.historyService.GetLastMessages(ctx, userId, 6)
	if err != nil {
		return nil
	}

	history := make([]llm.Message, len(recent))
	for i, msg := range recent {
		role := "assistant"
		if msg.IsUser {
			role = "user"
		}
		history[i] = llm.Message{Role: role, Content: msg.Text}
	}
	return history
}
