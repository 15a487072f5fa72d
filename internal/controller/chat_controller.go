package controller

import (
	"staystrong-chat-be/internal/dto"
	"staystrong-chat-be/internal/pkg/serverutils"
	"staystrong-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	ModelStatus(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.Post("/reset", c.Reset)
	r.Get("/health", c.Health)
	r.Get("/debug/model", c.ModelStatus)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.UserContext(), serverutils.GetRequestID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) Reset(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Reset(ctx.UserContext()))
}

func (c *chatController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Health(ctx.UserContext()))
}

func (c *chatController) ModelStatus(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.ModelStatus(ctx.UserContext()))
}
