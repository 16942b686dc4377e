package controller

import (
	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/pkg/serverutils"
	"healthcare-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	SendMessage(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetSessionMessages(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
}

func NewChatbotController(service service.IChatbotService) IChatbotController {
	return &chatbotController{service: service}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/chat")
	h.Use(auth)
	h.Post("/message", c.SendMessage)
	h.Get("/sessions", c.GetAllSessions)
	h.Get("/sessions/:id/messages", c.GetSessionMessages)
	h.Delete("/sessions/:id", c.DeleteSession)
}

func (c *chatbotController) SendMessage(ctx *fiber.Ctx) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), user, &req)
	if err != nil {
		return handleError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatbotController) GetAllSessions(ctx *fiber.Ctx) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAllSessions(ctx.UserContext(), user.Id)
	if err != nil {
		return handleError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all sessions", res))
}

func (c *chatbotController) GetSessionMessages(ctx *fiber.Ctx) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	sessionId, err := pathID(ctx, service.ErrSessionNotFound)
	if err != nil {
		return err
	}

	res, err := c.service.GetSessionMessages(ctx.UserContext(), user.Id, sessionId)
	if err != nil {
		return handleError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session messages", res))
}

func (c *chatbotController) DeleteSession(ctx *fiber.Ctx) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	sessionId, err := pathID(ctx, service.ErrSessionNotFound)
	if err != nil {
		return err
	}

	if err := c.service.DeleteSession(ctx.UserContext(), user.Id, sessionId); err != nil {
		return handleError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session deleted", nil))
}
