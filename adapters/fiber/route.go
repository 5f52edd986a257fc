package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/torii-auth/torii/core"
)

type Adapter struct {
	app *fiber.App
}

var _ core.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

func (a *Adapter) RegisterRoutes(app *core.App) error {
	api := a.app.Group(app.BasePath)

	api.Post("/sign-up", handleSignUp(app))
	api.Post("/sign-in", handleSignIn(app))
	api.Post("/sign-out", handleSignOut(app))
	api.Get("/session", handleSession(app))

	return nil
}
