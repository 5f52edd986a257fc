package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/torii-auth/torii/core"
)

// RequireSession creates a Fiber middleware that resolves the session cookie
// and stores user/session data in the context for downstream handlers.
func RequireSession(app *core.App) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(app.Session.CookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": core.ErrInvalidToken.Error(),
			})
		}

		data, err := app.Sessions.Resolve(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// Store user and session in context for downstream handlers
		c.Locals("user", data.User)
		c.Locals("session", data.Session)

		return c.Next()
	}
}
