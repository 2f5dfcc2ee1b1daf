package mapper

import (
	"time"

	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EntryMapper struct{}

func NewEntryMapper() *EntryMapper {
	return &EntryMapper{}
}

func (m *EntryMapper) ToEntity(e *model.Entry) *entity.Entry {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Entry{
		Id:        e.Id,
		UserId:    e.UserId,
		Content:   e.Content,
		Mood:      e.Mood,
		Topics:    []string(e.Topics),
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: e.DeletedAt.Valid,
	}
}

func (m *EntryMapper) ToModel(e *entity.Entry) *model.Entry {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Entry{
		Id:        e.Id,
		UserId:    e.UserId,
		Content:   e.Content,
		Mood:      e.Mood,
		Topics:    datatypes.NewJSONSlice(e.Topics),
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *EntryMapper) ToEntities(models []*model.Entry) []*entity.Entry {
	entities := make([]*entity.Entry, len(models))
	for i, mo := range models {
		entities[i] = m.ToEntity(mo)
	}
	return entities
}
