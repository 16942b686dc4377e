package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id            uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID                   `gorm:"type:uuid;not null;index"`
	ChatSession   *ChatSession                `gorm:"foreignKey:ChatSessionId;constraint:OnDelete:CASCADE"`
	Role          string                      `gorm:"type:varchar(20);not null"`
	Content       string                      `gorm:"type:text;not null"`
	Severity      *string                     `gorm:"type:varchar(20)"`
	Suggestions   datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt     time.Time                   `gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
