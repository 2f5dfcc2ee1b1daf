package dto

import "reflecta-journal-be/pkg/analysis"

type SendDialogueRequest struct {
	Message string `json:"message" validate:"required"`
}

type SendDialogueResponse struct {
	Response     string                `json:"response"`
	MoodAnalysis analysis.MoodAnalysis `json:"mood_analysis"`
}
