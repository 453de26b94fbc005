package serverutils

import (
	"strings"

	"thinkpad-notes-be/pkg/identity"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const callerIdKey = "callerId"

// Protected verifies the bearer credential on every request before any
// handler runs. There is no session store; each request stands alone.
func Protected(verifier identity.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrUnauthorized
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return ErrUnauthorized
		}

		uid, err := verifier.Verify(c.Context(), token)
		if err != nil {
			logrus.Debugf("token verification failed: %v", err)
			return ErrUnauthorized
		}

		c.Locals(callerIdKey, uid)
		return c.Next()
	}
}

// CallerId returns the identity established by Protected for this request.
func CallerId(c *fiber.Ctx) (string, error) {
	uid, ok := c.Locals(callerIdKey).(string)
	if !ok || uid == "" {
		return "", ErrUnauthorized
	}
	return uid, nil
}
