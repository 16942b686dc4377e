package mapper

import (
	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/model"

	"gorm.io/datatypes"
)

type datatypesSlice = datatypes.JSONSlice[string]

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:            s.Id,
		UserId:        s.UserId,
		Title:         s.Title,
		CreatedAt:     s.CreatedAt,
		LastMessageAt: s.LastMessageAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:            s.Id,
		UserId:        s.UserId,
		Title:         s.Title,
		CreatedAt:     s.CreatedAt,
		LastMessageAt: s.LastMessageAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	var suggestions []string
	if msg.Suggestions != nil {
		suggestions = append([]string{}, msg.Suggestions...)
	}
	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		Severity:      msg.Severity,
		Suggestions:   suggestions,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	var suggestions datatypesSlice
	if msg.Suggestions != nil {
		suggestions = append(datatypesSlice{}, msg.Suggestions...)
	}
	return &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		Severity:      msg.Severity,
		Suggestions:   suggestions,
		CreatedAt:     msg.CreatedAt,
	}
}
