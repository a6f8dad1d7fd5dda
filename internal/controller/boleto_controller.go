package controller

import (
	"ai-billing-be/internal/dto"
	"ai-billing-be/internal/pkg/serverutils"
	"ai-billing-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBoletoController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type boletoController struct {
	billingService service.IBillingService
}

func NewBoletoController(billingService service.IBillingService) IBoletoController {
	return &boletoController{
		billingService: billingService,
	}
}

func (c *boletoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/boleto/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Post(":id/cancel", c.Cancel)
	h.Get(":id", c.Show)
	h.Get("", c.List)
}

func tenantIdFromToken(ctx *fiber.Ctx) (uuid.UUID, error) {
	tenantStr, ok := ctx.Locals("tenant_id").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Missing tenant claim")
	}
	tenantId, err := uuid.Parse(tenantStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid tenant claim")
	}
	return tenantId, nil
}

func (c *boletoController) Create(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateBoletoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.TenantId = tenantId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.billingService.CreateBoleto(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Boleto created", res))
}

func (c *boletoController) Cancel(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	boletoId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid boleto id"))
	}

	var req dto.CancelBoletoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.TenantId = tenantId
	req.BoletoId = boletoId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.billingService.CancelBoleto(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Boleto cancelled", res))
}

func (c *boletoController) Show(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	boletoId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid boleto id"))
	}

	res, err := c.billingService.GetBoleto(ctx.Context(), tenantId, boletoId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Boleto", res))
}

func (c *boletoController) List(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.billingService.ListBoletos(ctx.Context(), tenantId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Boletos", res))
}
