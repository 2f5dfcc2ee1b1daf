package dto

import "reflecta-journal-be/pkg/analysis"

type AnalyzeTextRequest struct {
	Text string `json:"text" validate:"required"`
}

type AnalyzeTextResponse struct {
	Response     string                `json:"response"`
	MoodAnalysis analysis.MoodAnalysis `json:"mood_analysis"`
}

// AnalyzeEntryMoodMessage is the async pipeline payload for scoring a newly
// created entry.
type AnalyzeEntryMoodMessage struct {
	EntryId string `json:"entry_id"`
}
