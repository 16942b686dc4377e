package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	Id                 uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email              string                      `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash       string                      `gorm:"type:varchar(255);not null"`
	FullName           string                      `gorm:"type:varchar(255);not null"`
	Age                *int                        `gorm:"type:integer"`
	ExistingConditions datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt          time.Time                   `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
