package serverutils

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID = "user_id"
	LocalUser   = "user"
)

// Authenticator resolves a bearer token to the caller. Plain errors become a 401 carrying the
// error text; a *fiber.Error is passed on unchanged.
type Authenticator interface {
	AuthenticateToken(ctx context.Context, raw string) (userID string, user interface{}, err error)
}

func JwtMiddleware(auth Authenticator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		userID, user, err := auth.AuthenticateToken(ctx.UserContext(), strings.TrimSpace(authHeader[7:]))
		if err != nil {
			var ferr *fiber.Error
			if errors.As(err, &ferr) {
				return err
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, err.Error()))
		}

		ctx.Locals(LocalUserID, userID)
		ctx.Locals(LocalUser, user)
		return ctx.Next()
	}
}
