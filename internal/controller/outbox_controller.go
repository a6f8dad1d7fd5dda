package controller

import (
	"ai-billing-be/internal/dto"
	"ai-billing-be/internal/pkg/serverutils"
	"ai-billing-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOutboxController interface {
	RegisterRoutes(r fiber.Router)
	Queue(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type outboxController struct {
	messagingService service.IMessagingService
}

func NewOutboxController(messagingService service.IMessagingService) IOutboxController {
	return &outboxController{
		messagingService: messagingService,
	}
}

func (c *outboxController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/outbox/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Queue)
	h.Get("", c.List)
}

func (c *outboxController) Queue(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.QueueMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.TenantId = tenantId
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messagingService.QueueMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message queued", res))
}

func (c *outboxController) List(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.messagingService.ListOutbox(ctx.Context(), tenantId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Outbox", res))
}
