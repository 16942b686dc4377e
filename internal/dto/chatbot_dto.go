package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Message   string     `json:"message" validate:"required"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
}

type ChatMessageResponse struct {
	Id          uuid.UUID `json:"id"`
	SessionId   uuid.UUID `json:"session_id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	Severity    *string   `json:"severity"`
	Suggestions []string  `json:"suggestions"`
	Timestamp   time.Time `json:"timestamp"`
}

type ChatSessionResponse struct {
	Id            uuid.UUID `json:"id"`
	UserId        uuid.UUID `json:"user_id"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	LastMessageAt time.Time `json:"last_message_at"`
}
