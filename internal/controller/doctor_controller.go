package controller

import (
	"healthcare-chatbot-be/internal/pkg/serverutils"
	"healthcare-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDoctorController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type doctorController struct {
	service service.IDoctorService
}

func NewDoctorController(service service.IDoctorService) IDoctorController {
	return &doctorController{service: service}
}

func (c *doctorController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/doctors")
	h.Use(auth)
	h.Get("", c.GetAll)
	h.Get("/:id", c.Show)
}

func (c *doctorController) GetAll(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get all doctors", c.service.ListDoctors()))
}

func (c *doctorController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.GetDoctor(ctx.Params("id"))
	if err != nil {
		return handleError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get doctor", res))
}
