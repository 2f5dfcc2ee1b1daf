package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Mirror entries never expire on their own; ClearHistory removes them.
const chatMirrorKeyPrefix = "reflecta:chat_history:"

type ChatMirrorRepositoryImpl struct {
	rdb *redis.Client
}

func NewChatMirrorRepository(rdb *redis.Client) contract.ChatMirrorRepository {
	return &ChatMirrorRepositoryImpl{rdb: rdb}
}

func mirrorKey(userId uuid.UUID) string {
	return chatMirrorKeyPrefix + userId.String()
}

func (r *ChatMirrorRepositoryImpl) Read(ctx context.Context, userId uuid.UUID) ([]entity.HistoryMessage, error) {
	if r.rdb == nil {
		return nil, nil
	}

	raw, err := r.rdb.Get(ctx, mirrorKey(userId)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read chat mirror: %w", err)
	}

	var messages []entity.HistoryMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		// A corrupt mirror is not worth failing activation over.
		return nil, nil
	}
	return messages, nil
}

func (r *ChatMirrorRepositoryImpl) Write(ctx context.Context, userId uuid.UUID, messages []entity.HistoryMessage) error {
	if r.rdb == nil {
		return nil
	}

	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal chat mirror: %w", err)
	}
	return r.rdb.Set(ctx, mirrorKey(userId), data, 0).Err()
}

func (r *ChatMirrorRepositoryImpl) Clear(ctx context.Context, userId uuid.UUID) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(ctx, mirrorKey(userId)).Err()
}
