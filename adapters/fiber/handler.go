package fiber

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/storeit/vaulted/core"
)

// handleSignUp returns a handler for the sign-up endpoint: it issues an OTP
// and creates the record on a first sign-up for the email.
func (a *Adapter) handleSignUp() func(*core.RequestContext) error {
	return func(ctx *core.RequestContext) error {
		c := ctx.Request.(fiber.Ctx)

		var input core.SignUpInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(core.ErrorResponse{
				Error: "invalid request body",
			})
		}

		result, err := ctx.Accounts.CreateAccount(c.Context(), input)
		if err != nil {
			return handleAccountError(c, err)
		}

		return c.Status(http.StatusCreated).JSON(result)
	}
}

// handleSignIn returns a handler for the sign-in endpoint: it issues an OTP
// for an existing record. An unknown email is a control transfer to the
// sign-up flow.
func (a *Adapter) handleSignIn() func(*core.RequestContext) error {
	return func(ctx *core.RequestContext) error {
		c := ctx.Request.(fiber.Ctx)

		var input core.SignInInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(core.ErrorResponse{
				Error: "invalid request body",
			})
		}

		result, err := ctx.Accounts.SignIn(c.Context(), input)
		if err != nil {
			if errors.Is(err, core.ErrUserNotFound) {
				return c.Redirect().Status(http.StatusSeeOther).To(a.SignUpPath)
			}
			return handleAccountError(c, err)
		}

		return c.Status(http.StatusOK).JSON(result)
	}
}

// handleVerifyOTP returns a handler for the verify-otp endpoint: it exchanges
// the pending account id and passcode for a session and stores its secret in
// the session cookie.
func (a *Adapter) handleVerifyOTP() func(*core.RequestContext) error {
	return func(ctx *core.RequestContext) error {
		c := ctx.Request.(fiber.Ctx)

		var input core.VerifyInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(core.ErrorResponse{
				Error: "invalid request body",
			})
		}

		result, err := ctx.Accounts.VerifyOTP(c.Context(), input)
		if err != nil {
			return handleAccountError(c, err)
		}

		setSessionCookie(c, a.Cookie, result.Secret)

		return c.Status(http.StatusOK).JSON(result)
	}
}

// handleCurrentUser returns a handler for the me endpoint: it resolves the
// session cookie to the user record. A missing record transfers to sign-up,
// an invalid session to sign-in.
func (a *Adapter) handleCurrentUser() func(*core.RequestContext) error {
	return func(ctx *core.RequestContext) error {
		c := ctx.Request.(fiber.Ctx)

		secret := c.Cookies(a.Cookie.Name)

		user, err := ctx.Accounts.CurrentUser(c.Context(), secret)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrUserNotOnboarded):
				return c.Redirect().Status(http.StatusSeeOther).To(a.SignUpPath)
			case errors.Is(err, core.ErrSessionInvalid):
				return c.Redirect().Status(http.StatusSeeOther).To(a.SignInPath)
			}
			return handleAccountError(c, err)
		}

		return c.Status(http.StatusOK).JSON(user)
	}
}

// handleSignOut returns a handler for the sign-out endpoint: it deletes the
// provider session. The cookie is cleared and the client navigated to
// sign-in regardless of the delete outcome.
func (a *Adapter) handleSignOut() func(*core.RequestContext) error {
	return func(ctx *core.RequestContext) error {
		c := ctx.Request.(fiber.Ctx)

		secret := c.Cookies(a.Cookie.Name)

		// Best effort; the workflow logs its own failures
		_ = ctx.Accounts.SignOut(c.Context(), secret)

		clearSessionCookie(c, a.Cookie)
		return c.Redirect().Status(http.StatusSeeOther).To(a.SignInPath)
	}
}

func setSessionCookie(c fiber.Ctx, spec core.CookieSpec, secret string) {
	c.Cookie(&fiber.Cookie{
		Name:     spec.Name,
		Value:    secret,
		Path:     spec.Path,
		HTTPOnly: spec.HTTPOnly,
		Secure:   spec.Secure,
		SameSite: spec.SameSite,
	})
}

func clearSessionCookie(c fiber.Ctx, spec core.CookieSpec) {
	c.Cookie(&fiber.Cookie{
		Name:     spec.Name,
		Value:    "",
		Path:     spec.Path,
		HTTPOnly: spec.HTTPOnly,
		Secure:   spec.Secure,
		SameSite: spec.SameSite,
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
}

// handleAccountError maps workflow errors to HTTP responses
func handleAccountError(c fiber.Ctx, err error) error {
	return c.Status(mapErrorToStatus(err)).JSON(core.ErrorResponse{
		Error: err.Error(),
	})
}

// mapErrorToStatus maps sentinel errors to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrFullNameRequired),
		errors.Is(err, core.ErrAccountIDRequired),
		errors.Is(err, core.ErrPasscodeRequired):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrSessionInvalid):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrUserExists):
		return http.StatusConflict

	case errors.Is(err, core.ErrOTPSendFailed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
