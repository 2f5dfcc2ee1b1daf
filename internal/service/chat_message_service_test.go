package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChatMessageService_SaveAndGetAll(t *testing.T) {
	factory := newFakeFactory()
	svc := NewChatMessageService(factory, time.UTC)
	ctx := context.Background()
	userId := uuid.New()

	resp, err := svc.Save(ctx, userId, &dto.SendChatMessageRequest{
		MessageText:   "hello there",
		IsUserMessage: true,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.Id)

	_, err = svc.Save(ctx, userId, &dto.SendChatMessageRequest{
		MessageText:   "hi, how are you feeling today?",
		IsUserMessage: false,
	})
	assert.NoError(t, err)

	messages, err := svc.GetAll(ctx, userId, 0)
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, "hello there", messages[0].MessageText)
	assert.True(t, messages[0].IsUserMessage)
	assert.False(t, messages[1].IsUserMessage)
	assert.Empty(t, svc.LastError(userId))
}

func TestChatMessageService_GetAllLimitKeepsMostRecent(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	factory.state.messages = []*entity.ChatMessage{
		{Id: uuid.New(), UserId: userId, MessageText: "oldest", IsUserMessage: true, CreatedAt: base},
		{Id: uuid.New(), UserId: userId, MessageText: "middle", IsUserMessage: false, CreatedAt: base.Add(time.Minute)},
		{Id: uuid.New(), UserId: userId, MessageText: "newest", IsUserMessage: true, CreatedAt: base.Add(2 * time.Minute)},
	}

	svc := NewChatMessageService(factory, time.UTC)

	// A binding limit keeps the most recent rows, returned ascending.
	messages, err := svc.GetAll(context.Background(), userId, 2)
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, "middle", messages[0].MessageText)
	assert.Equal(t, "newest", messages[1].MessageText)
}

func TestChatMessageService_GetAllAbsorbsReadFailure(t *testing.T) {
	factory := newFakeFactory()
	factory.state.messageErr = errors.New("connection refused")
	svc := NewChatMessageService(factory, time.UTC)
	userId := uuid.New()

	messages, err := svc.GetAll(context.Background(), userId, 0)
	assert.NoError(t, err)
	assert.Empty(t, messages)
	assert.Contains(t, svc.LastError(userId), "connection refused")

	// A successful read clears the sticky error.
	factory.state.messageErr = nil
	_, err = svc.GetAll(context.Background(), userId, 0)
	assert.NoError(t, err)
	assert.Empty(t, svc.LastError(userId))
}

func TestChatMessageService_ConcurrentReadsCollapse(t *testing.T) {
	factory := newFakeFactory()
	factory.state.findAllDelay = 50 * time.Millisecond
	svc := NewChatMessageService(factory, time.UTC)
	userId := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetAll(context.Background(), userId, 0)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	calls := atomic.LoadInt64(&factory.state.findAllCalls)
	assert.Less(t, calls, int64(8), "identical concurrent reads should share one query")
}

func TestChatMessageService_GetGrouped(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()

	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	factory.state.messages = []*entity.ChatMessage{
		{Id: uuid.New(), UserId: userId, MessageText: "morning one", IsUserMessage: true, CreatedAt: day1},
		{Id: uuid.New(), UserId: userId, MessageText: "morning two", IsUserMessage: false, CreatedAt: day1.Add(time.Minute)},
		{Id: uuid.New(), UserId: userId, MessageText: "evening", IsUserMessage: true, CreatedAt: day2},
	}

	svc := NewChatMessageService(factory, time.UTC)
	grouped, err := svc.GetGrouped(context.Background(), userId, "", "")
	assert.NoError(t, err)
	assert.Len(t, grouped, 2)
	assert.Equal(t, "2026-03-01", grouped[0].Date)
	assert.Len(t, grouped[0].Messages, 2)
	assert.Equal(t, "2026-03-02", grouped[1].Date)
	assert.Len(t, grouped[1].Messages, 1)

	// Bounds trim the window on either side, inclusive of the named days.
	bounded, err := svc.GetGrouped(context.Background(), userId, "2026-03-02", "2026-03-02")
	assert.NoError(t, err)
	assert.Len(t, bounded, 1)
	assert.Equal(t, "2026-03-02", bounded[0].Date)

	_, err = svc.GetGrouped(context.Background(), userId, "not-a-date", "")
	assert.Error(t, err)
}

func TestChatMessageService_GetByDate(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()

	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	factory.state.messages = []*entity.ChatMessage{
		{Id: uuid.New(), UserId: userId, MessageText: "late", IsUserMessage: false, CreatedAt: day1.Add(2 * time.Hour)},
		{Id: uuid.New(), UserId: userId, MessageText: "early", IsUserMessage: true, CreatedAt: day1},
		{Id: uuid.New(), UserId: userId, MessageText: "next day", IsUserMessage: true, CreatedAt: day2},
	}

	svc := NewChatMessageService(factory, time.UTC)

	messages, err := svc.GetByDate(context.Background(), userId, "2026-03-01")
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, "early", messages[0].MessageText)
	assert.Equal(t, "late", messages[1].MessageText)

	empty, err := svc.GetByDate(context.Background(), userId, "2026-03-05")
	assert.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.GetByDate(context.Background(), userId, "03/01/2026")
	assert.Error(t, err)
}

func TestChatMessageService_GetByDateAbsorbsReadFailure(t *testing.T) {
	factory := newFakeFactory()
	factory.state.messageErr = errors.New("timeout")
	svc := NewChatMessageService(factory, time.UTC)
	userId := uuid.New()

	messages, err := svc.GetByDate(context.Background(), userId, "2026-03-01")
	assert.NoError(t, err)
	assert.Empty(t, messages)
	assert.Contains(t, svc.LastError(userId), "timeout")
}

func TestChatMessageService_DeleteScopedToOwner(t *testing.T) {
	factory := newFakeFactory()
	owner := uuid.New()
	other := uuid.New()
	msgId := uuid.New()
	factory.state.messages = []*entity.ChatMessage{
		{Id: msgId, UserId: owner, MessageText: "mine", CreatedAt: time.Now()},
	}

	svc := NewChatMessageService(factory, time.UTC)

	// Another user's delete on the same id leaves the row alone.
	assert.NoError(t, svc.Delete(context.Background(), other, msgId))
	messages, _ := svc.GetAll(context.Background(), owner, 0)
	assert.Len(t, messages, 1)

	assert.NoError(t, svc.Delete(context.Background(), owner, msgId))
	messages, _ = svc.GetAll(context.Background(), owner, 0)
	assert.Empty(t, messages)
}

func TestChatMessageService_Clear(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	keep := uuid.New()
	factory.state.messages = []*entity.ChatMessage{
		{Id: uuid.New(), UserId: userId, MessageText: "a", CreatedAt: time.Now()},
		{Id: uuid.New(), UserId: userId, MessageText: "b", CreatedAt: time.Now()},
		{Id: uuid.New(), UserId: keep, MessageText: "someone else", CreatedAt: time.Now()},
	}

	svc := NewChatMessageService(factory, time.UTC)
	assert.NoError(t, svc.Clear(context.Background(), userId))

	mine, _ := svc.GetAll(context.Background(), userId, 0)
	assert.Empty(t, mine)
	theirs, _ := svc.GetAll(context.Background(), keep, 0)
	assert.Len(t, theirs, 1)
}
