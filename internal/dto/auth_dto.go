package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email              string   `json:"email" validate:"required,email"`
	Password           string   `json:"password" validate:"required,min=6"`
	FullName           string   `json:"full_name" validate:"required"`
	Age                *int     `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	ExistingConditions []string `json:"existing_conditions,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	Age                *int      `json:"age"`
	ExistingConditions []string  `json:"existing_conditions"`
	CreatedAt          time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}
