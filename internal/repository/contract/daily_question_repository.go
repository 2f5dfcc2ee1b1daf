package contract

import (
	"context"

	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/repository/specification"
)

type DailyQuestionRepository interface {
	Create(ctx context.Context, question *entity.DailyQuestion) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DailyQuestion, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
