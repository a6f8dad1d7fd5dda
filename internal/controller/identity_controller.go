package controller

import (
	"ai-billing-be/internal/dto"
	"ai-billing-be/internal/pkg/serverutils"
	"ai-billing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIdentityController interface {
	RegisterRoutes(r fiber.Router)
	CreateTenant(ctx *fiber.Ctx) error
	CreateUser(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
}

type identityController struct {
	identityService service.IIdentityService
}

func NewIdentityController(identityService service.IIdentityService) IIdentityController {
	return &identityController{
		identityService: identityService,
	}
}

func (c *identityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/identity/v1")
	h.Post("tenant", c.CreateTenant)
	h.Post("user", c.CreateUser)
	h.Post("login", c.Login)
}

func (c *identityController) CreateTenant(ctx *fiber.Ctx) error {
	var req dto.CreateTenantRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.identityService.CreateTenant(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Tenant created", res))
}

func (c *identityController) CreateUser(ctx *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.identityService.CreateUser(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("User created", res))
}

func (c *identityController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.identityService.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Logged in", res))
}
