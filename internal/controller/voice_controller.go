package controller

import (
	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/pkg/serverutils"
	"healthcare-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const audioFormField = "audio_file"

type IVoiceController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	SpeechToText(ctx *fiber.Ctx) error
	TextToSpeech(ctx *fiber.Ctx) error
	GetVoices(ctx *fiber.Ctx) error
}

type voiceController struct {
	service service.IVoiceService
}

func NewVoiceController(service service.IVoiceService) IVoiceController {
	return &voiceController{service: service}
}

func (c *voiceController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/voice")
	h.Use(auth)
	h.Post("/speech-to-text", c.SpeechToText)
	h.Post("/text-to-speech", c.TextToSpeech)
	h.Get("/voices", c.GetVoices)
}

func (c *voiceController) SpeechToText(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile(audioFormField)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "audio_file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to read audio file")
	}
	defer file.Close()

	res, err := c.service.Transcribe(ctx.UserContext(), file, fileHeader.Filename)
	if err != nil {
		return handleError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success transcribe audio", res))
}

func (c *voiceController) TextToSpeech(ctx *fiber.Ctx) error {
	var req dto.TTSRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Synthesize(ctx.UserContext(), &req)
	if err != nil {
		return handleError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success synthesize speech", res))
}

func (c *voiceController) GetVoices(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get voices", c.service.ListVoices()))
}
