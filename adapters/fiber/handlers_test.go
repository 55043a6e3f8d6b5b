package fiber

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/storeit/vaulted/core"
)

// mockAccountHandler is a test fake implementing core.AccountHandler
type mockAccountHandler struct {
	createResult *core.SignUpResult
	createErr    error

	signInResult *core.SignInResult
	signInErr    error

	verifyResult *core.VerifyResult
	verifyErr    error

	currentUser *core.UserRecord
	currentErr  error

	signOutErr     error
	signOutCalled  bool
	signOutSecret  string
	signInCalled   bool
	createCalled   bool
	verifyCalled   bool
	currentCalled  bool
	currentSecret  string
	receivedInputs []any
}

func (m *mockAccountHandler) CreateAccount(ctx context.Context, input core.SignUpInput) (*core.SignUpResult, error) {
	m.createCalled = true
	m.receivedInputs = append(m.receivedInputs, input)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createResult, nil
}

func (m *mockAccountHandler) SignIn(ctx context.Context, input core.SignInInput) (*core.SignInResult, error) {
	m.signInCalled = true
	m.receivedInputs = append(m.receivedInputs, input)
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	return m.signInResult, nil
}

func (m *mockAccountHandler) VerifyOTP(ctx context.Context, input core.VerifyInput) (*core.VerifyResult, error) {
	m.verifyCalled = true
	m.receivedInputs = append(m.receivedInputs, input)
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return m.verifyResult, nil
}

func (m *mockAccountHandler) CurrentUser(ctx context.Context, secret string) (*core.UserRecord, error) {
	m.currentCalled = true
	m.currentSecret = secret
	if m.currentErr != nil {
		return nil, m.currentErr
	}
	return m.currentUser, nil
}

func (m *mockAccountHandler) SignOut(ctx context.Context, secret string) error {
	m.signOutCalled = true
	m.signOutSecret = secret
	return m.signOutErr
}

func newTestApp(t *testing.T, mock *mockAccountHandler) *fiber.App {
	t.Helper()
	app := fiber.New()
	adapter := New(app)
	if err := adapter.RegisterRoutes(mock, "/api/auth"); err != nil {
		t.Fatalf("RegisterRoutes() error = %v", err)
	}
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == core.SessionCookieName {
			return cookie
		}
	}
	return nil
}

// Requirement: a successful verification sets the session cookie with
// httpOnly, secure, sameSite=strict attributes scoped to path "/".
func TestVerifyOTP_SetsSessionCookie(t *testing.T) {
	mock := &mockAccountHandler{
		verifyResult: &core.VerifyResult{SessionID: "sess-1", Secret: "opaque-secret"},
	}
	app := newTestApp(t, mock)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/verify-otp",
		`{"accountId":"acct-1","password":"482910"}`))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !mock.verifyCalled {
		t.Fatal("VerifyOTP was not called")
	}

	cookie := sessionCookie(resp)
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if cookie.Value != "opaque-secret" {
		t.Errorf("cookie value = %q, want the session secret", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("cookie must be httpOnly")
	}
	if !cookie.Secure {
		t.Error("cookie must be secure")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("cookie sameSite = %v, want strict", cookie.SameSite)
	}
	if cookie.Path != "/" {
		t.Errorf("cookie path = %q, want %q", cookie.Path, "/")
	}
}

// Requirement: a failed verification sets no cookie and reports the failure.
func TestVerifyOTP_FailureSetsNoCookie(t *testing.T) {
	mock := &mockAccountHandler{verifyErr: errors.New("invalid passcode")}
	app := newTestApp(t, mock)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/verify-otp",
		`{"accountId":"acct-1","password":"000000"}`))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
	if sessionCookie(resp) != nil {
		t.Error("no cookie should be set on failure")
	}
}

// Requirement: sign-out clears the session cookie and navigates to sign-in
// even when the provider delete fails.
func TestSignOut_AlwaysClearsCookieAndRedirects(t *testing.T) {
	tests := []struct {
		name       string
		signOutErr error
	}{
		{
			name: "provider delete succeeds",
		},
		{
			name:       "provider delete fails",
			signOutErr: errors.New("provider down"),
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			mock := &mockAccountHandler{signOutErr: test.signOutErr}
			app := newTestApp(t, mock)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-out", nil)
			req.AddCookie(&http.Cookie{Name: core.SessionCookieName, Value: "opaque-secret"})

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}

			if !mock.signOutCalled {
				t.Fatal("SignOut was not called")
			}
			if mock.signOutSecret != "opaque-secret" {
				t.Errorf("SignOut secret = %q, want the cookie value", mock.signOutSecret)
			}
			if resp.StatusCode != http.StatusSeeOther {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
			}
			if loc := resp.Header.Get("Location"); loc != "/sign-in" {
				t.Errorf("Location = %q, want %q", loc, "/sign-in")
			}

			cookie := sessionCookie(resp)
			if cookie == nil {
				t.Fatal("clearing cookie not sent")
			}
			if cookie.Value != "" {
				t.Errorf("cleared cookie value = %q, want empty", cookie.Value)
			}
			if cookie.MaxAge >= 0 && cookie.Expires.IsZero() {
				t.Error("cleared cookie must expire immediately")
			}
		})
	}
}

// Requirement: sign-in for an unknown email redirects to the sign-up flow.
func TestSignIn_UnknownEmailRedirectsToSignUp(t *testing.T) {
	mock := &mockAccountHandler{signInErr: core.ErrUserNotFound}
	app := newTestApp(t, mock)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/sign-in", `{"email":"nobody@x.com"}`))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if loc := resp.Header.Get("Location"); loc != "/sign-up" {
		t.Errorf("Location = %q, want %q", loc, "/sign-up")
	}
}

// Requirement: sign-in for a known email returns the stored accountId.
func TestSignIn_KnownEmail(t *testing.T) {
	mock := &mockAccountHandler{signInResult: &core.SignInResult{AccountID: "acct-stored"}}
	app := newTestApp(t, mock)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/sign-in", `{"email":"jane@x.com"}`))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !mock.signInCalled {
		t.Error("SignIn was not called")
	}
}

// Requirement: sign-up returns 201 with the pending account id and maps an
// OTP send failure to a gateway error.
func TestSignUp(t *testing.T) {
	tests := []struct {
		name       string
		mock       *mockAccountHandler
		wantStatus int
	}{
		{
			name:       "created",
			mock:       &mockAccountHandler{createResult: &core.SignUpResult{AccountID: "acct-1"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "otp send failure",
			mock:       &mockAccountHandler{createErr: core.ErrOTPSendFailed},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "validation failure",
			mock:       &mockAccountHandler{createErr: core.ErrEmailRequired},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			app := newTestApp(t, test.mock)

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/sign-up",
				`{"fullName":"Jane Doe","email":"jane@x.com"}`))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}

			if resp.StatusCode != test.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, test.wantStatus)
			}
			if test.wantStatus >= http.StatusBadRequest {
				var body core.ErrorResponse
				if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
					t.Fatalf("decoding error body: %v", err)
				}
				if body.Error == "" {
					t.Error("error response has empty error field")
				}
			}
		})
	}
}

// Requirement: /me resolves the cookie; an invalid session redirects to
// sign-in and a missing record to sign-up.
func TestCurrentUser(t *testing.T) {
	tests := []struct {
		name         string
		mock         *mockAccountHandler
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "valid session returns the record",
			mock:       &mockAccountHandler{currentUser: &core.UserRecord{ID: "doc-1", Email: "jane@x.com"}},
			wantStatus: http.StatusOK,
		},
		{
			name:         "invalid session redirects to sign-in",
			mock:         &mockAccountHandler{currentErr: core.ErrSessionInvalid},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/sign-in",
		},
		{
			name:         "missing record redirects to sign-up",
			mock:         &mockAccountHandler{currentErr: core.ErrUserNotOnboarded},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/sign-up",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			app := newTestApp(t, test.mock)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			req.AddCookie(&http.Cookie{Name: core.SessionCookieName, Value: "opaque-secret"})

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}

			if resp.StatusCode != test.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, test.wantStatus)
			}
			if test.wantLocation != "" {
				if loc := resp.Header.Get("Location"); loc != test.wantLocation {
					t.Errorf("Location = %q, want %q", loc, test.wantLocation)
				}
			}
			if test.mock.currentSecret != "opaque-secret" {
				t.Errorf("CurrentUser secret = %q, want the cookie value", test.mock.currentSecret)
			}
		})
	}
}

// Requirement: RequireUser stores the resolved record for downstream
// handlers and redirects unauthenticated requests.
func TestRequireUser(t *testing.T) {
	mock := &mockAccountHandler{currentUser: &core.UserRecord{ID: "doc-1"}}

	app := fiber.New()
	adapter := New(app)
	app.Get("/protected", adapter.RequireUser(mock), func(c fiber.Ctx) error {
		user, ok := c.Locals("user").(*core.UserRecord)
		if !ok || user == nil {
			t.Error("user not stored in context")
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: core.SessionCookieName, Value: "opaque-secret"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// Without a valid session the middleware redirects
	mock.currentErr = core.ErrSessionInvalid
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
}
