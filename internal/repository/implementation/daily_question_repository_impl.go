package implementation

import (
	"context"

	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/mapper"
	"reflecta-journal-be/internal/model"
	"reflecta-journal-be/internal/repository/contract"
	"reflecta-journal-be/internal/repository/specification"

	"gorm.io/gorm"
)

type DailyQuestionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuestionMapper
}

func NewDailyQuestionRepository(db *gorm.DB) contract.DailyQuestionRepository {
	return &DailyQuestionRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuestionMapper(),
	}
}

func (r *DailyQuestionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DailyQuestionRepositoryImpl) Create(ctx context.Context, question *entity.DailyQuestion) error {
	m := r.mapper.ToModel(question)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*question = *r.mapper.ToEntity(m)
	return nil
}

func (r *DailyQuestionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DailyQuestion, error) {
	var models []*model.DailyQuestion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DailyQuestionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DailyQuestion{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
