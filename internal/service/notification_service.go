package service

import (
	"context"

	"reflecta-journal-be/internal/pkg/logger"
	"reflecta-journal-be/internal/websocket"
	"reflecta-journal-be/pkg/events"
	pktNats "reflecta-journal-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationService bridges the event bus to connected clients: when the
// async pipeline finishes scoring an entry, every open session of that user
// hears about it without polling.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	hub        *websocket.Hub
	log        logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, hub *websocket.Hub, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		hub:        hub,
		log:        log,
	}
}

// Start begins draining the event bus with a durable consumer.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		return
	}
	err := s.subscriber.Subscribe("events.>", "journal-notifier", s.handleEvent)
	if err != nil {
		s.log.Error("notifications", "failed to start event subscriber", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	s.log.Info("notifications", "listening on events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	userId, ok := payloadUserId(event.Payload())
	if !ok {
		// Events without a user target have no one to notify.
		return nil
	}

	switch event.EventType() {
	case events.TypeEntryAnalyzed:
		s.hub.Send(userId, "entry_analyzed", map[string]interface{}{
			"entry_id": event.Payload()["entry_id"],
			"mood":     event.Payload()["mood"],
		})
	case events.TypeChatCleared:
		// Other devices of the same user drop their local history view.
		s.hub.Send(userId, "chat_cleared", map[string]interface{}{})
	}
	return nil
}

func payloadUserId(payload map[string]interface{}) (uuid.UUID, bool) {
	raw, ok := payload["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
