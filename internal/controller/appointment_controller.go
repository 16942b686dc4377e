package controller

import (
	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/pkg/serverutils"
	"healthcare-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAppointmentController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type appointmentController struct {
	service service.IAppointmentService
}

func NewAppointmentController(service service.IAppointmentService) IAppointmentController {
	return &appointmentController{service: service}
}

func (c *appointmentController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/appointments")
	h.Use(auth)
	h.Post("", c.Create)
	h.Get("", c.GetAll)
	h.Patch("/:id/cancel", c.Cancel)
}

func (c *appointmentController) Create(ctx *fiber.Ctx) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateAppointmentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Book(ctx.UserContext(), user, &req)
	if err != nil {
		return handleError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointment booked", res))
}

func (c *appointmentController) GetAll(ctx *fiber.Ctx) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), user.Id)
	if err != nil {
		return handleError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all appointments", res))
}

func (c *appointmentController) Cancel(ctx *fiber.Ctx) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx, service.ErrAppointmentNotFound)
	if err != nil {
		return err
	}

	res, err := c.service.Cancel(ctx.UserContext(), user, id)
	if err != nil {
		return handleError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointment cancelled", res))
}
