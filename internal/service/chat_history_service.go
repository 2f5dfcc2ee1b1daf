package service

import (
	"context"
	"fmt"
	"time"

	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/pkg/logger"
	"reflecta-journal-be/internal/repository/contract"
	"reflecta-journal-be/internal/repository/memory"
	"reflecta-journal-be/internal/repository/specification"
	"reflecta-journal-be/internal/repository/unitofwork"
	"reflecta-journal-be/pkg/events"
	pktNats "reflecta-journal-be/pkg/nats"
	"reflecta-journal-be/pkg/store"

	"github.com/google/uuid"
)

type IChatHistoryService interface {
	// Activate loads the session: mirror first for instant display, then the
	// remote store reconciles on top. Idempotent once loaded.
	Activate(ctx context.Context, userId uuid.UUID) (*dto.ChatHistoryResponse, error)
	State(userId uuid.UUID) *dto.ChatHistoryResponse
	AddUserMessage(ctx context.Context, userId uuid.UUID, text string) error
	AddAIMessage(ctx context.Context, userId uuid.UUID, text string) error
	AddExchange(ctx context.Context, userId uuid.UUID, req *dto.AddExchangeRequest) error
	ClearHistory(ctx context.Context, userId uuid.UUID) error
	GetLastMessages(ctx context.Context, userId uuid.UUID, n int) ([]dto.HistoryMessageDTO, error)
}

type chatHistoryService struct {
	sessionRepo    *memory.ChatSessionRepository
	mirrorRepo     contract.ChatMirrorRepository
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewChatHistoryService(
	sessionRepo *memory.ChatSessionRepository,
	mirrorRepo contract.ChatMirrorRepository,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatHistoryService {
	return &chatHistoryService{
		sessionRepo:    sessionRepo,
		mirrorRepo:     mirrorRepo,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *chatHistoryService) Activate(ctx context.Context, userId uuid.UUID) (*dto.ChatHistoryResponse, error) {
	session := s.getOrCreateSession(userId)

	session.Mu.Lock()
	if session.Loaded {
		resp := s.snapshot(session)
		session.Mu.Unlock()
		return resp, nil
	}

	// Phase 1: the durable mirror answers immediately.
	mirrored, err := s.mirrorRepo.Read(ctx, userId)
	if err != nil {
		s.log.Warn("chat_history", "mirror read failed, starting empty", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
	if len(mirrored) > 0 {
		session.Messages = mirrored
	}
	session.Syncing = true
	session.Mu.Unlock()

	// Phase 2: the remote store is authoritative when reachable. On failure
	// the mirror content stands.
	remote, err := s.fetchRemote(ctx, userId)

	session.Mu.Lock()
	reconciled := false
	if err != nil {
		s.log.Warn("chat_history", "remote fetch failed, keeping mirror content", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	} else if len(remote) > 0 {
		// An empty remote set never displaces the mirror: lines whose
		// best-effort remote save failed would be silently lost.
		session.Messages = remote
		reconciled = true
	}
	session.Syncing = false
	session.Loaded = true
	messages := append([]entity.HistoryMessage(nil), session.Messages...)
	session.Mu.Unlock()

	if reconciled {
		s.writeMirror(ctx, userId, messages)
	}

	return s.State(userId), nil
}

func (s *chatHistoryService) State(userId uuid.UUID) *dto.ChatHistoryResponse {
	session, found := s.sessionRepo.Get(userId.String())
	if !found {
		return &dto.ChatHistoryResponse{Messages: []dto.HistoryMessageDTO{}}
	}
	session.Mu.Lock()
	defer session.Mu.Unlock()
	return s.snapshot(session)
}

func (s *chatHistoryService) AddUserMessage(ctx context.Context, userId uuid.UUID, text string) error {
	return s.append(ctx, userId, []entity.HistoryMessage{newHistoryMessage(text, true)})
}

func (s *chatHistoryService) AddAIMessage(ctx context.Context, userId uuid.UUID, text string) error {
	return s.append(ctx, userId, []entity.HistoryMessage{newHistoryMessage(text, false)})
}

// AddExchange appends the user line and its reply as one unit, so no reader
// ever observes the reply without its prompt.
func (s *chatHistoryService) AddExchange(ctx context.Context, userId uuid.UUID, req *dto.AddExchangeRequest) error {
	return s.append(ctx, userId, []entity.HistoryMessage{
		newHistoryMessage(req.UserText, true),
		newHistoryMessage(req.AiText, false),
	})
}

func (s *chatHistoryService) ClearHistory(ctx context.Context, userId uuid.UUID) error {
	session := s.getOrCreateSession(userId)

	session.Mu.Lock()
	session.Messages = nil
	session.Loaded = true
	session.Syncing = false
	session.Mu.Unlock()

	if err := s.mirrorRepo.Clear(ctx, userId); err != nil {
		s.log.Warn("chat_history", "mirror clear failed", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}

	if s.eventPublisher != nil {
		evt := events.New(events.TypeChatCleared, map[string]interface{}{
			"user_id": userId,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("chat_history", "failed to publish CHAT_CLEARED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// The local state is already cleared; a remote failure is reported so the
	// caller knows the stores have diverged.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return fmt.Errorf("history cleared locally but remote delete failed: %w", err)
	}
	return nil
}

// GetLastMessages returns up to n most recent lines, oldest first, for use as
// conversation context.
func (s *chatHistoryService) GetLastMessages(ctx context.Context, userId uuid.UUID, n int) ([]dto.HistoryMessageDTO, error) {
	state, err := s.Activate(ctx, userId)
	if err != nil {
		return nil, err
	}

	messages := state.Messages
	if n > 0 && len(messages) > n {
		messages = messages[len(messages)-n:]
	}
	return messages, nil
}

func (s *chatHistoryService) append(ctx context.Context, userId uuid.UUID, batch []entity.HistoryMessage) error {
	if _, err := s.Activate(ctx, userId); err != nil {
		return err
	}
	session := s.getOrCreateSession(userId)

	session.Mu.Lock()
	session.Messages = append(session.Messages, batch...)
	messages := append([]entity.HistoryMessage(nil), session.Messages...)
	session.Mu.Unlock()

	s.writeMirror(ctx, userId, messages)

	// Remote persistence is best effort; the mirror already holds the lines.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	for _, msg := range batch {
		row := entity.ChatMessage{
			Id:            msg.Id,
			UserId:        userId,
			MessageText:   msg.Text,
			IsUserMessage: msg.IsUser,
			CreatedAt:     msg.Timestamp,
		}
		if err := uow.ChatMessageRepository().Create(ctx, &row); err != nil {
			s.log.Warn("chat_history", "remote persist failed", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
			break
		}
	}
	return nil
}

func (s *chatHistoryService) getOrCreateSession(userId uuid.UUID) *store.ChatSession {
	if session, found := s.sessionRepo.Get(userId.String()); found {
		return session
	}
	session := &store.ChatSession{UserID: userId}
	s.sessionRepo.Save(session)
	return session
}

func (s *chatHistoryService) fetchRemote(ctx context.Context, userId uuid.UUID) ([]entity.HistoryMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	messages := make([]entity.HistoryMessage, len(rows))
	for i, row := range rows {
		messages[i] = entity.HistoryMessage{
			Id:        row.Id,
			Text:      row.MessageText,
			IsUser:    row.IsUserMessage,
			Timestamp: row.CreatedAt,
		}
	}
	return messages, nil
}

func (s *chatHistoryService) writeMirror(ctx context.Context, userId uuid.UUID, messages []entity.HistoryMessage) {
	if err := s.mirrorRepo.Write(ctx, userId, messages); err != nil {
		s.log.Warn("chat_history", "mirror write failed", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
}

func (s *chatHistoryService) snapshot(session *store.ChatSession) *dto.ChatHistoryResponse {
	messages := make([]dto.HistoryMessageDTO, len(session.Messages))
	for i, msg := range session.Messages {
		messages[i] = dto.HistoryMessageDTO{
			Id:        msg.Id.String(),
			Text:      msg.Text,
			IsUser:    msg.IsUser,
			Timestamp: msg.Timestamp,
		}
	}
	return &dto.ChatHistoryResponse{
		Messages: messages,
		Loaded:   session.Loaded,
		Syncing:  session.Syncing,
	}
}

func newHistoryMessage(text string, isUser bool) entity.HistoryMessage {
	return entity.HistoryMessage{
		Id:        uuid.New(),
		Text:      text,
		IsUser:    isUser,
		Timestamp: time.Now(),
	}
}
