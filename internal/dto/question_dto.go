package dto

import "github.com/google/uuid"

type DailyQuestionResponse struct {
	Id           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
}
