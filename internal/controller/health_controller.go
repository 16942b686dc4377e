package controller

import (
	"time"

	"healthcare-chatbot-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	now func() time.Time
}

func NewHealthController() IHealthController {
	return &healthController{now: time.Now}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Get("/health", c.Health)
}

func (c *healthController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{
		"message": "Healthcare Chatbot API",
		"status":  "healthy",
	}))
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{
		"status":    "healthy",
		"timestamp": c.now().UTC().Format(time.RFC3339),
	}))
}
