package implementation

import (
	"context"
	"errors"

	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/mapper"
	"reflecta-journal-be/internal/model"
	"reflecta-journal-be/internal/repository/contract"
	"reflecta-journal-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EntryMapper
}

func NewEntryRepository(db *gorm.DB) contract.EntryRepository {
	return &EntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewEntryMapper(),
	}
}

func (r *EntryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EntryRepositoryImpl) Create(ctx context.Context, entry *entity.Entry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *EntryRepositoryImpl) Update(ctx context.Context, entry *entity.Entry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *EntryRepositoryImpl) DeleteOwned(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		Delete(&model.Entry{}).Error
}

func (r *EntryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Entry, error) {
	var m model.Entry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Entry, error) {
	var models []*model.Entry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EntryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Entry{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
