package controller

import (
	"thinkpad-notes-be/internal/dto"
	"thinkpad-notes-be/internal/pkg/serverutils"
	"thinkpad-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router, protected fiber.Handler)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	service service.INoteService
}

func NewNoteController(service service.INoteService) INoteController {
	return &noteController{service: service}
}

func (c *noteController) RegisterRoutes(r fiber.Router, protected fiber.Handler) {
	h := r.Group("/notes", protected)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	callerId, err := serverutils.CallerId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), callerId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	callerId, err := serverutils.CallerId(ctx)
	if err != nil {
		return err
	}

	id, err := noteId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), id, callerId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	callerId, err := serverutils.CallerId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrBadRequest
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), callerId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	callerId, err := serverutils.CallerId(ctx)
	if err != nil {
		return err
	}

	id, err := noteId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrBadRequest
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, callerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	callerId, err := serverutils.CallerId(ctx)
	if err != nil {
		return err
	}

	id, err := noteId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id, callerId); err != nil {
		return err
	}

	return ctx.JSON(dto.DeleteNoteResponse{
		Id:      id,
		Message: "Note deleted successfully",
	})
}

// noteId parses the :id route param. A malformed id can never address a
// record, so it reads as not found rather than bad request.
func noteId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.ErrNotFound
	}
	return id, nil
}
