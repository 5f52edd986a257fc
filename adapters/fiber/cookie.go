package fiber

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/torii-auth/torii/core"
)

// cookieWriter adapts a fiber response into the orchestrator's cookie sink.
// Cookies are always HTTP-only.
type cookieWriter struct {
	c    fiber.Ctx
	path string
}

var _ core.CookieWriter = (*cookieWriter)(nil)

func newCookieWriter(c fiber.Ctx, session *core.SessionConfig) *cookieWriter {
	path := "/"
	if session != nil && session.CookiePath != "" {
		path = session.CookiePath
	}
	return &cookieWriter{c: c, path: path}
}

func (w *cookieWriter) SetCookie(name, value string, maxAge time.Duration, expires time.Time) {
	w.c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     w.path,
		MaxAge:   int(maxAge.Seconds()),
		Expires:  expires,
		HTTPOnly: true,
	})
}

func (w *cookieWriter) ClearCookie(name string) {
	w.c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     w.path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
	})
}
