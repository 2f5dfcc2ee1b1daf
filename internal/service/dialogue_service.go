package service

import (
	"context"

	"reflecta-journal-be/internal/dto"

	"github.com/google/uuid"
)

type IDialogueService interface {
	Send(ctx context.Context, userId uuid.UUID, req *dto.SendDialogueRequest) (*dto.SendDialogueResponse, error)
}

type dialogueService struct {
	analysisService IAnalysisService
	historyService  IChatHistoryService
}

func NewDialogueService(analysisService IAnalysisService, historyService IChatHistoryService) IDialogueService {
	return &dialogueService{
		analysisService: analysisService,
		historyService:  historyService,
	}
}

// Send runs one conversation turn: analyze the message, then record the
// prompt and the reply as a single exchange so history order is stable.
func (s *dialogueService) Send(ctx context.Context, userId uuid.UUID, req *dto.SendDialogueRequest) (*dto.SendDialogueResponse, error) {
	result, err := s.analysisService.AnalyzeText(ctx, userId, &dto.AnalyzeTextRequest{Text: req.Message})
	if err != nil {
		return nil, err
	}

	if err := s.historyService.AddExchange(ctx, userId, &dto.AddExchangeRequest{
		UserText: req.Message,
		AiText:   result.Response,
	}); err != nil {
		return nil, err
	}

	return &dto.SendDialogueResponse{
		Response:     result.Response,
		MoodAnalysis: result.MoodAnalysis,
	}, nil
}
