package contract

import (
	"context"

	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	Update(ctx context.Context, entry *entity.Entry) error
	DeleteOwned(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Entry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Entry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
