package controller

import (
	"thinkpad-notes-be/internal/dto"
	"thinkpad-notes-be/internal/pkg/serverutils"
	"thinkpad-notes-be/pkg/identity"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Verify(ctx *fiber.Ctx) error
}

type authController struct {
	verifier identity.Verifier
}

func NewAuthController(verifier identity.Verifier) IAuthController {
	return &authController{verifier: verifier}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/verify", c.Verify)
}

// Verify lets a client check a credential without touching any note data.
// Anything short of a verifiable token answers 401; the endpoint has no
// other failure mode.
func (c *authController) Verify(ctx *fiber.Ctx) error {
	var req dto.VerifyTokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrUnauthorized
	}
	if req.Token == "" {
		return serverutils.ErrUnauthorized
	}

	uid, err := c.verifier.Verify(ctx.Context(), req.Token)
	if err != nil {
		return serverutils.ErrUnauthorized
	}

	return ctx.JSON(dto.VerifyTokenResponse{Uid: uid})
}
