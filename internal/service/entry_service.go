package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/pkg/moodutil"
	"reflecta-journal-be/internal/repository/specification"
	"reflecta-journal-be/internal/repository/unitofwork"
	"reflecta-journal-be/pkg/events"
	pktNats "reflecta-journal-be/pkg/nats"

	"github.com/google/uuid"
)

type IEntryService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateEntryRequest) (*dto.CreateEntryResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowEntryResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.ShowEntryResponse, error)
	GetRange(ctx context.Context, userId uuid.UUID, startDate, endDate string) ([]*dto.ShowEntryResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateEntryRequest) (*dto.UpdateEntryResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type entryService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	location         *time.Location
}

func NewEntryService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	location *time.Location,
) IEntryService {
	if location == nil {
		location = time.Local
	}
	return &entryService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		location:         location,
	}
}

func (s *entryService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateEntryRequest) (*dto.CreateEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mood := 0
	if req.Mood != 0 {
		mood = moodutil.Clamp(req.Mood)
	}

	entry := entity.Entry{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   req.Content,
		Mood:      mood,
		Topics:    req.Topics,
		CreatedAt: time.Now(),
	}

	if err := uow.EntryRepository().Create(ctx, &entry); err != nil {
		return nil, err
	}

	// Unscored entries (voice transcripts, quick captures) get their mood
	// from the async analysis pipeline.
	if entry.Mood == 0 {
		msgPayload := dto.AnalyzeEntryMoodMessage{
			EntryId: entry.Id.String(),
		}
		msgJson, err := json.Marshal(msgPayload)
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			return nil, err
		}
	}

	if s.eventPublisher != nil {
		evt := events.New(events.TypeEntryCreated, map[string]interface{}{
			"entry_id": entry.Id,
			"user_id":  userId,
		})
		// We log error but don't fail the request as the event bus is auxiliary
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish ENTRY_CREATED event: %v\n", err)
		}
	}

	return &dto.CreateEntryResponse{Id: entry.Id}, nil
}

func (s *entryService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.EntryRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil // Not found
	}
	return toShowEntryResponse(entry), nil
}

func (s *entryService) GetAll(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.ShowEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if limit > 0 {
		specs = append(specs, specification.Limit{N: limit})
	}

	entries, err := uow.EntryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ShowEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = toShowEntryResponse(entry)
	}
	return responses, nil
}

// GetRange returns the user's entries between two local calendar days,
// newest first. Either bound may be empty to leave that side open.
func (s *entryService) GetRange(ctx context.Context, userId uuid.UUID, startDate, endDate string) ([]*dto.ShowEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if startDate != "" {
		from, _, err := localDayBounds(s.location, startDate)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.CreatedFrom{At: from})
	}
	if endDate != "" {
		_, until, err := localDayBounds(s.location, endDate)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.CreatedUntil{At: until})
	}

	entries, err := uow.EntryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ShowEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = toShowEntryResponse(entry)
	}
	return responses, nil
}

// localDayBounds resolves a YYYY-MM-DD string to the inclusive instant range
// of that calendar day in the given timezone.
func localDayBounds(loc *time.Location, date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	from := day
	until := day.AddDate(0, 0, 1).Add(-time.Millisecond)
	return from, until, nil
}

func (s *entryService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateEntryRequest) (*dto.UpdateEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.EntryRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.New("entry not found")
	}

	now := time.Now()
	entry.Content = req.Content
	if req.Mood != 0 {
		entry.Mood = moodutil.Clamp(req.Mood)
	}
	if req.Topics != nil {
		entry.Topics = req.Topics
	}
	entry.UpdatedAt = &now

	if err := uow.EntryRepository().Update(ctx, entry); err != nil {
		return nil, err
	}

	return &dto.UpdateEntryResponse{Id: entry.Id}, nil
}

func (s *entryService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EntryRepository().DeleteOwned(ctx, id, userId)
}

func toShowEntryResponse(entry *entity.Entry) *dto.ShowEntryResponse {
	topics := entry.Topics
	if topics == nil {
		topics = []string{}
	}
	return &dto.ShowEntryResponse{
		Id:        entry.Id,
		Content:   entry.Content,
		Mood:      entry.Mood,
		Topics:    topics,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
