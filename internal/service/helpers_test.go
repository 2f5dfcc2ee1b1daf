package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/repository/contract"
	"reflecta-journal-be/internal/repository/specification"
	"reflecta-journal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests. Specifications are
// interpreted structurally rather than through gorm.

type fakeState struct {
	mu sync.Mutex

	users     []*entity.User
	entries   []*entity.Entry
	messages  []*entity.ChatMessage
	questions []*entity.DailyQuestion

	findAllCalls int64
	findAllDelay time.Duration

	entryErr   error
	messageErr error
}

type fakeFactory struct {
	state *fakeState
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{state: &fakeState{}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{state: f.state}
}

type fakeUow struct {
	state *fakeState
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{state: u.state}
}

func (u *fakeUow) EntryRepository() contract.EntryRepository {
	return &fakeEntryRepo{state: u.state}
}

func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeChatMessageRepo{state: u.state}
}

func (u *fakeUow) DailyQuestionRepository() contract.DailyQuestionRepository {
	return &fakeQuestionRepo{state: u.state}
}

type fakeUserRepo struct {
	state *fakeState
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.users = append(r.state.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	email := emailOf(specs)
	for _, u := range r.state.users {
		if email == "" || u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return int64(len(r.state.users)), nil
}

type fakeEntryRepo struct {
	state *fakeState
}

func (r *fakeEntryRepo) Create(ctx context.Context, entry *entity.Entry) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.entryErr != nil {
		return r.state.entryErr
	}
	r.state.entries = append(r.state.entries, entry)
	return nil
}

func (r *fakeEntryRepo) Update(ctx context.Context, entry *entity.Entry) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.entryErr != nil {
		return r.state.entryErr
	}
	for i, e := range r.state.entries {
		if e.Id == entry.Id {
			r.state.entries[i] = entry
		}
	}
	return nil
}

func (r *fakeEntryRepo) DeleteOwned(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	kept := r.state.entries[:0]
	for _, e := range r.state.entries {
		if !(e.Id == id && e.UserId == userId) {
			kept = append(kept, e)
		}
	}
	r.state.entries = kept
	return nil
}

func (r *fakeEntryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Entry, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.entryErr != nil {
		return nil, r.state.entryErr
	}
	id, hasID := idOf(specs)
	owner, hasOwner := ownerOf(specs)
	for _, e := range r.state.entries {
		if hasID && e.Id != id {
			continue
		}
		if hasOwner && e.UserId != owner {
			continue
		}
		return e, nil
	}
	return nil, nil
}

func (r *fakeEntryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Entry, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.entryErr != nil {
		return nil, r.state.entryErr
	}
	owner, hasOwner := ownerOf(specs)
	from, until := createdBoundsOf(specs)
	var out []*entity.Entry
	for _, e := range r.state.entries {
		if hasOwner && e.UserId != owner {
			continue
		}
		if from != nil && e.CreatedAt.Before(*from) {
			continue
		}
		if until != nil && e.CreatedAt.After(*until) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if desc(specs) {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if n, ok := limitOf(specs); ok && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (r *fakeEntryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return int64(len(r.state.entries)), nil
}

type fakeChatMessageRepo struct {
	state *fakeState
}

func (r *fakeChatMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.messageErr != nil {
		return r.state.messageErr
	}
	r.state.messages = append(r.state.messages, message)
	return nil
}

func (r *fakeChatMessageRepo) DeleteOwned(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.messageErr != nil {
		return r.state.messageErr
	}
	kept := r.state.messages[:0]
	for _, m := range r.state.messages {
		if !(m.Id == id && m.UserId == userId) {
			kept = append(kept, m)
		}
	}
	r.state.messages = kept
	return nil
}

func (r *fakeChatMessageRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.messageErr != nil {
		return r.state.messageErr
	}
	kept := r.state.messages[:0]
	for _, m := range r.state.messages {
		if m.UserId != userId {
			kept = append(kept, m)
		}
	}
	r.state.messages = kept
	return nil
}

func (r *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	atomic.AddInt64(&r.state.findAllCalls, 1)
	if r.state.findAllDelay > 0 {
		time.Sleep(r.state.findAllDelay)
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.messageErr != nil {
		return nil, r.state.messageErr
	}
	owner, hasOwner := ownerOf(specs)
	from, until := createdBoundsOf(specs)
	var out []*entity.ChatMessage
	for _, m := range r.state.messages {
		if hasOwner && m.UserId != owner {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if until != nil && m.CreatedAt.After(*until) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if desc(specs) {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if n, ok := limitOf(specs); ok && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (r *fakeChatMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return int64(len(r.state.messages)), nil
}

type fakeQuestionRepo struct {
	state *fakeState
}

func (r *fakeQuestionRepo) Create(ctx context.Context, question *entity.DailyQuestion) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.questions = append(r.state.questions, question)
	return nil
}

func (r *fakeQuestionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DailyQuestion, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []*entity.DailyQuestion
	for _, q := range r.state.questions {
		if activeOnly(specs) && !q.IsActive {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuestionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return int64(len(r.state.questions)), nil
}

// Spec helpers

func idOf(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if v, ok := s.(specification.ByID); ok {
			return v.ID, true
		}
	}
	return uuid.Nil, false
}

func ownerOf(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if v, ok := s.(specification.OwnedBy); ok {
			return v.UserID, true
		}
	}
	return uuid.Nil, false
}

func emailOf(specs []specification.Specification) string {
	for _, s := range specs {
		if v, ok := s.(specification.ByEmail); ok {
			return v.Email
		}
	}
	return ""
}

func limitOf(specs []specification.Specification) (int, bool) {
	for _, s := range specs {
		if v, ok := s.(specification.Limit); ok {
			return v.N, true
		}
	}
	return 0, false
}

func createdBoundsOf(specs []specification.Specification) (*time.Time, *time.Time) {
	var from, until *time.Time
	for _, s := range specs {
		switch v := s.(type) {
		case specification.CreatedFrom:
			at := v.At
			from = &at
		case specification.CreatedUntil:
			at := v.At
			until = &at
		}
	}
	return from, until
}

func desc(specs []specification.Specification) bool {
	for _, s := range specs {
		if v, ok := s.(specification.OrderBy); ok {
			return v.Desc
		}
	}
	return false
}

func activeOnly(specs []specification.Specification) bool {
	for _, s := range specs {
		if _, ok := s.(specification.ActiveOnly); ok {
			return true
		}
	}
	return false
}

// noopLogger satisfies logger.ILogger for tests.
type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// fakeMirror is an in-memory contract.ChatMirrorRepository.
type fakeMirror struct {
	mu       sync.Mutex
	data     map[uuid.UUID][]entity.HistoryMessage
	readErr  error
	writeErr error
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{data: make(map[uuid.UUID][]entity.HistoryMessage)}
}

func (m *fakeMirror) Read(ctx context.Context, userId uuid.UUID) ([]entity.HistoryMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	return append([]entity.HistoryMessage(nil), m.data[userId]...), nil
}

func (m *fakeMirror) Write(ctx context.Context, userId uuid.UUID, messages []entity.HistoryMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[userId] = append([]entity.HistoryMessage(nil), messages...)
	return nil
}

func (m *fakeMirror) Clear(ctx context.Context, userId uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, userId)
	return nil
}
