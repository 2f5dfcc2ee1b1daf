package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/repository/specification"
	"reflecta-journal-be/internal/repository/unitofwork"
	"reflecta-journal-be/pkg/analysis"
	"reflecta-journal-be/pkg/events"
	pktNats "reflecta-journal-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the mood-analysis topic: entries created without a
// score get analyzed and folded back into the row.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	analyzer       *analysis.Analyzer
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	analyzer *analysis.Analyzer,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		analyzer:       analyzer,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.AnalyzeEntryMoodMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	entryId, err := uuid.Parse(payload.EntryId)
	if err != nil {
		log.Printf("[ERROR] Invalid entry id %q: %v", payload.EntryId, err)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Processing mood analysis for EntryId: %s", entryId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.EntryRepository().FindOne(ctx, specification.ByID{ID: entryId})
	if err != nil {
		log.Printf("[ERROR] Failed to get entry %s: %v", entryId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if entry == nil {
		log.Printf("[ERROR] Entry not found: %s", entryId)
		msg.Ack() // Entry deleted? Ack.
		return
	}
	if entry.Mood != 0 {
		// Scored in the meantime, nothing to do.
		msg.Ack()
		return
	}

	result, err := cs.analyzer.Analyze(ctx, entry.Content, nil)
	if err != nil {
		// Only empty text reaches here; nothing to score.
		log.Printf("[WARN] Skipping analysis for entry %s: %v", entryId, err)
		msg.Ack()
		return
	}

	now := time.Now()
	entry.Mood = result.MoodAnalysis.Mood
	if len(entry.Topics) == 0 {
		entry.Topics = result.MoodAnalysis.Topics
	}
	entry.UpdatedAt = &now

	if err := uow.EntryRepository().Update(ctx, entry); err != nil {
		log.Printf("[ERROR] Failed to update entry %s: %v", entryId, err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.New(events.TypeEntryAnalyzed, map[string]interface{}{
			"entry_id": entry.Id,
			"user_id":  entry.UserId,
			"mood":     entry.Mood,
		})
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish ENTRY_ANALYZED event: %v", err)
		}
	}

	msg.Ack()
}
