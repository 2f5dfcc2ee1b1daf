package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/repository/specification"
	"reflecta-journal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type IChatMessageService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SendChatMessageRequest) (*dto.SendChatMessageResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.ChatMessageResponse, error)
	GetByDate(ctx context.Context, userId uuid.UUID, date string) ([]*dto.ChatMessageResponse, error)
	GetGrouped(ctx context.Context, userId uuid.UUID, startDate, endDate string) ([]*dto.GroupedChatMessagesResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Clear(ctx context.Context, userId uuid.UUID) error

	// LastError returns the most recent absorbed read failure for the user,
	// empty when the last operation succeeded.
	LastError(userId uuid.UUID) string
}

type chatMessageService struct {
	uowFactory unitofwork.RepositoryFactory
	location   *time.Location

	// Concurrent identical reads collapse into one repository query.
	group singleflight.Group

	mu         sync.Mutex
	lastErrors map[uuid.UUID]string
}

func NewChatMessageService(uowFactory unitofwork.RepositoryFactory, location *time.Location) IChatMessageService {
	if location == nil {
		location = time.Local
	}
	return &chatMessageService{
		uowFactory: uowFactory,
		location:   location,
		lastErrors: make(map[uuid.UUID]string),
	}
}

func (s *chatMessageService) Save(ctx context.Context, userId uuid.UUID, req *dto.SendChatMessageRequest) (*dto.SendChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message := entity.ChatMessage{
		Id:            uuid.New(),
		UserId:        userId,
		MessageText:   req.MessageText,
		IsUserMessage: req.IsUserMessage,
		CreatedAt:     time.Now(),
	}

	if err := uow.ChatMessageRepository().Create(ctx, &message); err != nil {
		s.setLastError(userId, err)
		return nil, err
	}

	s.clearLastError(userId)
	return &dto.SendChatMessageResponse{
		Id:        message.Id,
		CreatedAt: message.CreatedAt,
	}, nil
}

// GetAll returns the user's messages oldest first. Read failures are
// absorbed: callers get an empty list and the error stays observable through
// LastError, so a flaky store degrades the view instead of breaking it.
func (s *chatMessageService) GetAll(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.ChatMessageResponse, error) {
	key := fmt.Sprintf("getAll_%s_%d", userId, limit)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.fetchAll(ctx, userId, limit, nil, nil)
	})
	if err != nil {
		s.setLastError(userId, err)
		return []*dto.ChatMessageResponse{}, nil
	}

	s.clearLastError(userId)
	return v.([]*dto.ChatMessageResponse), nil
}

// GetByDate returns the user's messages within one local calendar day,
// oldest first. Read failures absorb like GetAll.
func (s *chatMessageService) GetByDate(ctx context.Context, userId uuid.UUID, date string) ([]*dto.ChatMessageResponse, error) {
	from, until, err := s.dayBounds(date)
	if err != nil {
		return nil, err
	}

	messages, err := s.fetchAll(ctx, userId, 0, &from, &until)
	if err != nil {
		s.setLastError(userId, err)
		return []*dto.ChatMessageResponse{}, nil
	}

	s.clearLastError(userId)
	return messages, nil
}

// GetGrouped buckets the user's messages by local calendar day, optionally
// bounded to [startDate 00:00:00, endDate 23:59:59.999]. Empty bounds leave
// that side unconstrained.
func (s *chatMessageService) GetGrouped(ctx context.Context, userId uuid.UUID, startDate, endDate string) ([]*dto.GroupedChatMessagesResponse, error) {
	var from, until *time.Time
	if startDate != "" {
		f, _, err := s.dayBounds(startDate)
		if err != nil {
			return nil, err
		}
		from = &f
	}
	if endDate != "" {
		_, u, err := s.dayBounds(endDate)
		if err != nil {
			return nil, err
		}
		until = &u
	}

	key := fmt.Sprintf("grouped_%s_%s_%s", userId, startDate, endDate)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		messages, fetchErr := s.fetchAll(ctx, userId, 0, from, until)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return s.groupByDay(messages), nil
	})
	if err != nil {
		s.setLastError(userId, err)
		return []*dto.GroupedChatMessagesResponse{}, nil
	}

	s.clearLastError(userId)
	return v.([]*dto.GroupedChatMessagesResponse), nil
}

func (s *chatMessageService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().DeleteOwned(ctx, id, userId); err != nil {
		s.setLastError(userId, err)
		return err
	}
	s.clearLastError(userId)
	return nil
}

func (s *chatMessageService) Clear(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().DeleteAllByUserId(ctx, userId); err != nil {
		s.setLastError(userId, err)
		return err
	}
	s.clearLastError(userId)
	return nil
}

func (s *chatMessageService) LastError(userId uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErrors[userId]
}

func (s *chatMessageService) fetchAll(ctx context.Context, userId uuid.UUID, limit int, from, until *time.Time) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// A binding limit must keep the most recent rows, so the query runs
	// newest first and the page is flipped back to ascending below.
	bounded := limit > 0

	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: bounded},
	}
	if bounded {
		specs = append(specs, specification.Limit{N: limit})
	}
	if from != nil {
		specs = append(specs, specification.CreatedFrom{At: *from})
	}
	if until != nil {
		specs = append(specs, specification.CreatedUntil{At: *until})
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if bounded {
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}

	responses := make([]*dto.ChatMessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = &dto.ChatMessageResponse{
			Id:            msg.Id,
			MessageText:   msg.MessageText,
			IsUserMessage: msg.IsUserMessage,
			CreatedAt:     msg.CreatedAt,
		}
	}
	return responses, nil
}

// groupByDay buckets messages into calendar days in the app timezone,
// preserving chronological order of both days and messages.
func (s *chatMessageService) groupByDay(messages []*dto.ChatMessageResponse) []*dto.GroupedChatMessagesResponse {
	grouped := make([]*dto.GroupedChatMessagesResponse, 0)
	index := make(map[string]*dto.GroupedChatMessagesResponse)

	for _, msg := range messages {
		day := msg.CreatedAt.In(s.location).Format("2006-01-02")
		bucket, ok := index[day]
		if !ok {
			bucket = &dto.GroupedChatMessagesResponse{Date: day}
			index[day] = bucket
			grouped = append(grouped, bucket)
		}
		bucket.Messages = append(bucket.Messages, *msg)
	}

	return grouped
}

func (s *chatMessageService) dayBounds(date string) (time.Time, time.Time, error) {
	return localDayBounds(s.location, date)
}

func (s *chatMessageService) setLastError(userId uuid.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErrors[userId] = err.Error()
}

func (s *chatMessageService) clearLastError(userId uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lastErrors, userId)
}
