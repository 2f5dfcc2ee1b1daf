package service

import (
	"context"
	"errors"
	"time"

	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/repository/specification"
	"reflecta-journal-be/internal/repository/unitofwork"
)

type IQuestionService interface {
	GetDailyQuestion(ctx context.Context) (*dto.DailyQuestionResponse, error)
}

type questionService struct {
	uowFactory unitofwork.RepositoryFactory
	location   *time.Location
}

func NewQuestionService(uowFactory unitofwork.RepositoryFactory, location *time.Location) IQuestionService {
	if location == nil {
		location = time.Local
	}
	return &questionService{
		uowFactory: uowFactory,
		location:   location,
	}
}

// GetDailyQuestion rotates through active questions by day of year, so every
// user sees the same prompt on the same day.
func (s *questionService) GetDailyQuestion(ctx context.Context) (*dto.DailyQuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	questions, err := uow.DailyQuestionRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, errors.New("no daily questions configured")
	}

	dayOfYear := time.Now().In(s.location).YearDay()
	question := questions[dayOfYear%len(questions)]

	return &dto.DailyQuestionResponse{
		Id:           question.Id,
		QuestionText: question.Text,
	}, nil
}
