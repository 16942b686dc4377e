package controller

import (
	"context"
	"errors"

	"healthcare-chatbot-be/internal/pkg/serverutils"
	"healthcare-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type tokenAuthenticator struct {
	service service.IAuthService
}

// NewTokenAuthenticator lets serverutils.JwtMiddleware resolve bearer tokens through the auth service.
func NewTokenAuthenticator(service service.IAuthService) serverutils.Authenticator {
	return &tokenAuthenticator{service: service}
}

func (a *tokenAuthenticator) AuthenticateToken(ctx context.Context, raw string) (string, interface{}, error) {
	user, err := a.service.Authenticate(ctx, raw)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) ||
			errors.Is(err, service.ErrTokenInvalid) ||
			errors.Is(err, service.ErrUserNotFound) {
			return "", nil, err
		}
		return "", nil, fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
	return user.Id.String(), user, nil
}
