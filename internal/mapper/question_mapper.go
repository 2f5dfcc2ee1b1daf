package mapper

import (
	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/model"
)

type QuestionMapper struct{}

func NewQuestionMapper() *QuestionMapper {
	return &QuestionMapper{}
}

func (m *QuestionMapper) ToEntity(q *model.DailyQuestion) *entity.DailyQuestion {
	if q == nil {
		return nil
	}
	return &entity.DailyQuestion{
		Id:        q.Id,
		Text:      q.Text,
		Category:  q.Category,
		IsActive:  q.IsActive,
		CreatedAt: q.CreatedAt,
	}
}

func (m *QuestionMapper) ToModel(q *entity.DailyQuestion) *model.DailyQuestion {
	if q == nil {
		return nil
	}
	return &model.DailyQuestion{
		Id:        q.Id,
		Text:      q.Text,
		Category:  q.Category,
		IsActive:  q.IsActive,
		CreatedAt: q.CreatedAt,
	}
}

func (m *QuestionMapper) ToEntities(models []*model.DailyQuestion) []*entity.DailyQuestion {
	entities := make([]*entity.DailyQuestion, len(models))
	for i, mo := range models {
		entities[i] = m.ToEntity(mo)
	}
	return entities
}
