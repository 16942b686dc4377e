package service

import (
	"context"
	"io"
	"sync"
	"time"

	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/pkg/mailer"
	"healthcare-chatbot-be/internal/repository/contract"
	"healthcare-chatbot-be/internal/repository/specification"
	"healthcare-chatbot-be/internal/repository/unitofwork"
	"healthcare-chatbot-be/pkg/events"
	"healthcare-chatbot-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Repositories

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	args := m.Called(ctx, specs)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(ctx, specs)
	return args.Get(0).(int64), args.Error(1)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	args := m.Called(ctx, specs)
	s, _ := args.Get(0).(*entity.ChatSession)
	return s, args.Error(1)
}

func (m *mockSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	args := m.Called(ctx, specs)
	s, _ := args.Get(0).([]*entity.ChatSession)
	return s, args.Error(1)
}

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockMessageRepo) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	return m.Called(ctx, sessionId).Error(0)
}

func (m *mockMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	args := m.Called(ctx, specs)
	s, _ := args.Get(0).([]*entity.ChatMessage)
	return s, args.Error(1)
}

func (m *mockMessageRepo) FindRecent(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	args := m.Called(ctx, sessionId, limit)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID, int) []*entity.ChatMessage); ok {
		return fn(ctx, sessionId, limit), args.Error(1)
	}
	s, _ := args.Get(0).([]*entity.ChatMessage)
	return s, args.Error(1)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id, userId uuid.UUID, status entity.AppointmentStatus) (bool, error) {
	args := m.Called(ctx, id, userId, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockAppointmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Appointment, error) {
	args := m.Called(ctx, specs)
	a, _ := args.Get(0).(*entity.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Appointment, error) {
	args := m.Called(ctx, specs)
	a, _ := args.Get(0).([]*entity.Appointment)
	return a, args.Error(1)
}

// Unit of work

type fakeUoW struct {
	users        *mockUserRepo
	sessions     *mockSessionRepo
	messages     *mockMessageRepo
	appointments *mockAppointmentRepo

	began, committed, rolledBack int
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		users:        &mockUserRepo{},
		sessions:     &mockSessionRepo{},
		messages:     &mockMessageRepo{},
		appointments: &mockAppointmentRepo{},
	}
}

func (u *fakeUoW) Begin(ctx context.Context) error { u.began++; return nil }
func (u *fakeUoW) Commit() error                   { u.committed++; return nil }
func (u *fakeUoW) Rollback() error                 { u.rolledBack++; return nil }

func (u *fakeUoW) UserRepository() contract.UserRepository               { return u.users }
func (u *fakeUoW) ChatSessionRepository() contract.ChatSessionRepository { return u.sessions }
func (u *fakeUoW) ChatMessageRepository() contract.ChatMessageRepository { return u.messages }
func (u *fakeUoW) AppointmentRepository() contract.AppointmentRepository { return u.appointments }

type fakeFactory struct{ uow *fakeUoW }

func (f fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// Providers

type fakeLLM struct {
	reply   string
	err     error
	calls   int
	history []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	f.history = history
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

type fakeSpeech struct {
	text      string
	audio     []byte
	err       error
	lastVoice string
	lastFile  string
}

func (f *fakeSpeech) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	f.lastFile = filename
	return f.text, f.err
}

func (f *fakeSpeech) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	f.lastVoice = voice
	return f.audio, f.err
}

// Buses

type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingEvents) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

type recordingPublisher struct {
	payloads [][]byte
	err      error
}

func (r *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	r.payloads = append(r.payloads, payload)
	return r.err
}

type fakeMailer struct {
	mu            sync.Mutex
	confirmations []mailer.AppointmentNotice
	cancellations []mailer.AppointmentNotice
	err           error
}

func (f *fakeMailer) SendAppointmentConfirmation(n mailer.AppointmentNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations = append(f.confirmations, n)
	return f.err
}

func (f *fakeMailer) SendAppointmentCancellation(n mailer.AppointmentNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancellations = append(f.cancellations, n)
	return f.err
}

func (f *fakeMailer) sent() (confirmations, cancellations int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.confirmations), len(f.cancellations)
}
