// Package fiber adapts the account workflows to a gofiber v3 application:
// it registers the account routes, writes and clears the session cookie, and
// turns the services' sentinel errors into redirects at the HTTP edge.
package fiber

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/storeit/vaulted/core"
	"github.com/storeit/vaulted/services"
)

type Adapter struct {
	app *fiber.App

	// Cookie is the session cookie contract.
	Cookie core.CookieSpec

	// Pages the edge navigates to when a workflow transfers control.
	SignUpPath string
	SignInPath string
}

var _ core.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{
		app:        app,
		Cookie:     core.DefaultCookieSpec(),
		SignUpPath: "/sign-up",
		SignInPath: "/sign-in",
	}
}

// RegisterRoutes fills each registry endpoint's Handler with this adapter's
// implementation and binds a fiber route that invokes it through a
// RequestContext carrying the raw fiber context and the account workflows.
func (a *Adapter) RegisterRoutes(handler core.AccountHandler, basePath string) error {
	api := a.app.Group(basePath)

	for _, ep := range services.NewEndpointRegistry().Endpoints() {
		ep.Handler = a.handlerFor(ep.Metadata.OperationID)
		if ep.Handler == nil {
			return fmt.Errorf("no fiber handler for endpoint %s %s", ep.Method, ep.Path)
		}

		ep := ep
		api.Add([]string{ep.Method}, ep.Path, func(c fiber.Ctx) error {
			return ep.Handler(&core.RequestContext{
				Request:  c,
				Accounts: handler,
			})
		})
	}

	return nil
}

func (a *Adapter) handlerFor(operationID string) func(*core.RequestContext) error {
	switch operationID {
	case "createAccountWithEmailOTP":
		return a.handleSignUp()
	case "signInWithEmailOTP":
		return a.handleSignIn()
	case "verifyEmailOTP":
		return a.handleVerifyOTP()
	case "getCurrentUser":
		return a.handleCurrentUser()
	case "signOut":
		return a.handleSignOut()
	default:
		return nil
	}
}
