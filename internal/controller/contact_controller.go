package controller

import (
	"ai-billing-be/internal/dto"
	"ai-billing-be/internal/pkg/serverutils"
	"ai-billing-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IContactController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	OptOut(ctx *fiber.Ctx) error
}

type contactController struct {
	contactService service.IContactService
}

func NewContactController(contactService service.IContactService) IContactController {
	return &contactController{
		contactService: contactService,
	}
}

func (c *contactController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/contact/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/opt-out", c.OptOut)
}

func (c *contactController) Create(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.TenantId = tenantId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contactService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Contact created", res))
}

func (c *contactController) Update(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid contact id"))
	}

	var req dto.UpdateContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contactService.Update(ctx.Context(), tenantId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Contact updated", res))
}

func (c *contactController) Delete(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid contact id"))
	}

	if err := c.contactService.Delete(ctx.Context(), tenantId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Contact deleted", nil))
}

func (c *contactController) Show(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid contact id"))
	}

	res, err := c.contactService.Show(ctx.Context(), tenantId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Contact", res))
}

func (c *contactController) List(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.contactService.List(ctx.Context(), tenantId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Contacts", res))
}

func (c *contactController) OptOut(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdFromToken(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid contact id"))
	}

	if err := c.contactService.OptOut(ctx.Context(), tenantId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Contact opted out", nil))
}
