package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id                 uuid.UUID
	Email              string
	PasswordHash       string
	FullName           string
	Age                *int
	ExistingConditions []string
	CreatedAt          time.Time
}
