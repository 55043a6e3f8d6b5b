package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/storeit/vaulted/core"
)

// RequireUser creates a middleware that resolves the session cookie to the
// current user and stores the record in the context for downstream handlers.
// Requests without a valid session are redirected the same way the /me
// endpoint redirects.
func (a *Adapter) RequireUser(handler core.AccountHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		secret := c.Cookies(a.Cookie.Name)

		user, err := handler.CurrentUser(c.Context(), secret)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrUserNotOnboarded):
				return c.Redirect().Status(http.StatusSeeOther).To(a.SignUpPath)
			case errors.Is(err, core.ErrSessionInvalid):
				return c.Redirect().Status(http.StatusSeeOther).To(a.SignInPath)
			}
			return handleAccountError(c, err)
		}

		c.Locals("user", user)

		return c.Next()
	}
}
