package controller

import (
	"errors"

	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/pkg/serverutils"
	"healthcare-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// handleError maps service errors onto HTTP status codes. Unknown errors pass through and
// end up as a 500 in serverutils.ErrorHandlerMiddleware.
func handleError(err error) error {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrSlotUnavailable):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrUserNotFound):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrDoctorNotFound),
		errors.Is(err, service.ErrAppointmentNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrTranscriptionFailed),
		errors.Is(err, service.ErrSynthesisFailed):
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return err
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return serverutils.ValidateRequest(out)
}

// currentUser returns the caller stored by serverutils.JwtMiddleware.
func currentUser(ctx *fiber.Ctx) (*entity.User, error) {
	user, ok := ctx.Locals(serverutils.LocalUser).(*entity.User)
	if !ok || user == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, service.ErrUserNotFound.Error())
	}
	return user, nil
}

// pathID parses a uuid route param. A malformed id cannot name an existing row, so it is
// reported with the same message as a missing one.
func pathID(ctx *fiber.Ctx, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, notFound.Error())
	}
	return id, nil
}
