package fiber

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/torii-auth/torii/core"
)

// handleSignUp returns a handler for the sign-up endpoint
func handleSignUp(app *core.App) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input core.RegisterInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]string{
				"error": "invalid request body",
			})
		}

		user, err := app.Registrar.Register(input)
		if err != nil {
			return handleError(c, err)
		}

		return c.Status(http.StatusCreated).JSON(user)
	}
}

// handleSignIn returns a handler for the credentials sign-in endpoint.
// Verification happens against the backend; on success the session is
// established (cookie + backend record) before the response goes out.
// Every failure renders the same opaque denial.
func handleSignIn(app *core.App) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input core.Credentials
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]string{
				"error": "invalid request body",
			})
		}

		user, err := app.Credentials.Verify(input.Username, input.Password)
		if err != nil {
			return denied(c)
		}

		session, err := app.Sessions.Establish(newCookieWriter(c, app.Session), user)
		if err != nil {
			// Authentication succeeded but the session record did not
			// land; the sign-in must not be reported as successful.
			return denied(c)
		}

		return c.Status(http.StatusOK).JSON(map[string]any{
			"user":    user,
			"expires": session.Expires,
		})
	}
}

// handleSignOut returns a handler for the sign-out endpoint
func handleSignOut(app *core.App) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(app.Session.CookieName)
		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(map[string]string{
				"error": "missing session token",
			})
		}

		if err := app.Sessions.Destroy(token); err != nil {
			return handleError(c, err)
		}
		newCookieWriter(c, app.Session).ClearCookie(app.Session.CookieName)

		return c.Status(http.StatusOK).JSON(map[string]string{
			"message": "signed out successfully",
		})
	}
}

// handleSession returns a handler for the get-session endpoint
func handleSession(app *core.App) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(app.Session.CookieName)
		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(map[string]string{
				"error": "missing session token",
			})
		}

		data, err := app.Sessions.Resolve(token)
		if err != nil {
			return handleError(c, err)
		}

		return c.Status(http.StatusOK).JSON(data)
	}
}

func denied(c fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(map[string]string{
		"error": "access denied",
	})
}

// handleError maps torii errors to HTTP responses
func handleError(c fiber.Ctx, err error) error {
	return c.Status(mapErrorToStatus(err)).JSON(map[string]string{
		"error": err.Error(),
	})
}

func mapErrorToStatus(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrSessionNotFound),
		errors.Is(err, core.ErrSessionExpired):
		return http.StatusUnauthorized

	case errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
