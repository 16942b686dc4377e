package contract

import (
	"context"

	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	// FindRecent returns the newest limit messages of a session, oldest first.
	FindRecent(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error)
}
