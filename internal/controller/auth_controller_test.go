package controller

import (
	"encoding/json"
	"testing"

	"thinkpad-notes-be/internal/dto"
	"thinkpad-notes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp() *fiber.App {
	verifier := fakeVerifier{tokens: map[string]string{"token-a": "user-a"}}
	authController := NewAuthController(verifier)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	authController.RegisterRoutes(api)
	return app
}

func TestVerifyReturnsUid(t *testing.T) {
	app := newAuthTestApp()

	resp := doRequest(t, app, fiber.MethodPost, "/api/auth/verify", "", fiber.Map{"token": "token-a"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.VerifyTokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-a", body.Uid)
}

func TestVerifyRejectsInvalidToken(t *testing.T) {
	app := newAuthTestApp()

	resp := doRequest(t, app, fiber.MethodPost, "/api/auth/verify", "", fiber.Map{"token": "bogus"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyMissingTokenIsUnauthorized(t *testing.T) {
	app := newAuthTestApp()

	resp := doRequest(t, app, fiber.MethodPost, "/api/auth/verify", "", fiber.Map{})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodPost, "/api/auth/verify", "", fiber.Map{"token": ""})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
