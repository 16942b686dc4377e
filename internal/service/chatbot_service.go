package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"healthcare-chatbot-be/internal/constant"
	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/pkg/logger"
	"healthcare-chatbot-be/internal/repository/scope"
	"healthcare-chatbot-be/internal/repository/specification"
	"healthcare-chatbot-be/internal/repository/unitofwork"
	"healthcare-chatbot-be/pkg/events"
	"healthcare-chatbot-be/pkg/llm"
	"healthcare-chatbot-be/pkg/triage"

	"github.com/google/uuid"
)

type IChatbotService interface {
	SendMessage(ctx context.Context, user *entity.User, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionResponse, error)
	GetSessionMessages(ctx context.Context, userId, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
}

type chatbotService struct {
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.LLMProvider
	classifier     triage.Classifier
	eventPublisher events.Publisher
	logger         logger.ILogger
	llmLogger      logger.ILogger
	now            func() time.Time
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	classifier triage.Classifier,
	eventPublisher events.Publisher,
	log logger.ILogger,
	llmLogger logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		classifier:     classifier,
		eventPublisher: eventPublisher,
		logger:         log,
		llmLogger:      llmLogger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// sessionTitle keeps the first characters of the opening message.
func sessionTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= constant.SessionTitleMaxRune {
		return message
	}
	return string(runes[:constant.SessionTitleMaxRune]) + "..."
}

// buildSystemPrompt appends what we know about the patient to the triage policy.
func buildSystemPrompt(user *entity.User) string {
	var parts []string
	if user.Age != nil && *user.Age > 0 {
		parts = append(parts, "Patient age: "+strconv.Itoa(*user.Age))
	}
	if len(user.ExistingConditions) > 0 {
		parts = append(parts, "Existing conditions: "+strings.Join(user.ExistingConditions, ", "))
	}

	patientContext := constant.NoPatientContext
	if len(parts) > 0 {
		patientContext = strings.Join(parts, "\n")
	}
	return constant.TriageSystemPrompt + "\n\n" + constant.PatientContextHeader + "\n" + patientContext
}

func buildConversation(user *entity.User, history []*entity.ChatMessage) []llm.Message {
	conversation := make([]llm.Message, 0, len(history)+1)
	conversation = append(conversation, llm.Message{Role: llm.RoleSystem, Content: buildSystemPrompt(user)})
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == constant.ChatMessageRoleAssistant {
			role = llm.RoleAssistant
		}
		conversation = append(conversation, llm.Message{Role: role, Content: m.Content})
	}
	return conversation
}

func (s *chatbotService) SendMessage(ctx context.Context, user *entity.User, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()

	// 1. Resolve or open the session
	var session *entity.ChatSession
	if req.SessionId == nil {
		session = &entity.ChatSession{
			Id:            uuid.New(),
			UserId:        user.Id,
			Title:         sessionTitle(req.Message),
			CreatedAt:     now,
			LastMessageAt: now,
		}
		if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
			return nil, fmt.Errorf("create chat session: %w", err)
		}
	} else {
		found, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: *req.SessionId},
			specification.UserOwnedBy{UserID: user.Id},
		)
		if err != nil {
			return nil, fmt.Errorf("find chat session: %w", err)
		}
		if found == nil {
			return nil, ErrSessionNotFound
		}
		session = found
	}

	// 2. Persist the user's turn
	userMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleUser,
		Content:       req.Message,
		CreatedAt:     now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}

	// 3. Load the recent window, the new turn included
	history, err := uow.ChatMessageRepository().FindRecent(ctx, session.Id, constant.ChatHistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	// 4-6. Ask the provider and label the reply
	reply, severity, suggestions := s.assess(ctx, session.Id, buildConversation(user, history))

	// 7. Persist the assistant turn
	answeredAt := s.now()
	if !answeredAt.After(now) {
		answeredAt = now.Add(time.Microsecond)
	}
	sev := string(severity)
	assistantMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       reply,
		Severity:      &sev,
		Suggestions:   suggestions,
		CreatedAt:     answeredAt,
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("save assistant message: %w", err)
	}
	if err := uow.ChatSessionRepository().Touch(ctx, session.Id, answeredAt); err != nil {
		return nil, fmt.Errorf("touch chat session: %w", err)
	}

	if severity == triage.Emergency {
		publishEvent(ctx, s.eventPublisher, s.logger, events.TypeTriageEmergency, map[string]interface{}{
			"user_id":    user.Id.String(),
			"session_id": session.Id.String(),
			"message_id": assistantMsg.Id.String(),
		})
	}

	res := toChatMessageResponse(assistantMsg)
	return &res, nil
}

// assess never fails: provider errors degrade to the fixed apology reply.
func (s *chatbotService) assess(ctx context.Context, sessionId uuid.UUID, conversation []llm.Message) (string, triage.Severity, []string) {
	start := time.Now()
	reply, err := s.llmProvider.Chat(ctx, conversation)
	elapsed := time.Since(start)

	if err != nil {
		s.llmLogger.Error("LLM", "Provider call failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"turns":      len(conversation),
			"latency_ms": elapsed.Milliseconds(),
			"error":      err.Error(),
		})
		s.logger.Warn("CHATBOT", "Falling back to apology reply", map[string]interface{}{
			"session_id": sessionId.String(),
		})
		return constant.FallbackReply, triage.Consultation, []string{constant.FallbackSuggestion}
	}

	severity := s.classifier.Classify(reply)
	suggestions := s.classifier.Suggest(reply, severity)
	if suggestions == nil {
		suggestions = []string{}
	}

	s.llmLogger.Info("LLM", "Provider call succeeded", map[string]interface{}{
		"session_id":  sessionId.String(),
		"turns":       len(conversation),
		"latency_ms":  elapsed.Milliseconds(),
		"reply_chars": len(reply),
		"severity":    string(severity),
	})
	return reply, severity, suggestions
}

func (s *chatbotService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Scoped(scope.OrderByLastMessageDesc),
		specification.Pagination{Limit: constant.ChatSessionListCap},
	)
	if err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}

	res := make([]*dto.ChatSessionResponse, len(sessions))
	for i, sess := range sessions {
		res[i] = &dto.ChatSessionResponse{
			Id:            sess.Id,
			UserId:        sess.UserId,
			Title:         sess.Title,
			CreatedAt:     sess.CreatedAt,
			LastMessageAt: sess.LastMessageAt,
		}
	}
	return res, nil
}

func (s *chatbotService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) error {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return fmt.Errorf("find chat session: %w", err)
	}
	if session == nil {
		return ErrSessionNotFound
	}
	return nil
}

func (s *chatbotService) GetSessionMessages(ctx context.Context, userId, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.Scoped(scope.OrderByCreatedAsc),
		specification.Pagination{Limit: constant.ChatMessageListCap},
	)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}

	res := make([]*dto.ChatMessageResponse, len(messages))
	for i, m := range messages {
		r := toChatMessageResponse(m)
		res[i] = &r
	}
	return res, nil
}

func (s *chatbotService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return fmt.Errorf("delete chat messages: %w", err)
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return fmt.Errorf("delete chat session: %w", err)
	}
	return uow.Commit()
}

func toChatMessageResponse(m *entity.ChatMessage) dto.ChatMessageResponse {
	suggestions := m.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return dto.ChatMessageResponse{
		Id:          m.Id,
		SessionId:   m.ChatSessionId,
		Role:        m.Role,
		Content:     m.Content,
		Severity:    m.Severity,
		Suggestions: suggestions,
		Timestamp:   m.CreatedAt,
	}
}
