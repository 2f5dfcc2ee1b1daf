package mapper

import (
	"time"

	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var updatedAt *time.Time
	if !msg.UpdatedAt.IsZero() {
		t := msg.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		UserId:        msg.UserId,
		MessageText:   msg.MessageText,
		IsUserMessage: msg.IsUserMessage,
		CreatedAt:     msg.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ChatMapper) ToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var updatedAt time.Time
	if msg.UpdatedAt != nil {
		updatedAt = *msg.UpdatedAt
	}

	return &model.ChatMessage{
		Id:            msg.Id,
		UserId:        msg.UserId,
		MessageText:   msg.MessageText,
		IsUserMessage: msg.IsUserMessage,
		CreatedAt:     msg.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ChatMapper) ToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(models))
	for i, mo := range models {
		entities[i] = m.ToEntity(mo)
	}
	return entities
}
