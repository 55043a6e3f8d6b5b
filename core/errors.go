package core

import "errors"

// Account errors
var (
	ErrUserExists       = errors.New("user already exists")                  // 409 Conflict
	ErrUserNotFound     = errors.New("user not found")                       // 404 Not Found
	ErrUserNotOnboarded = errors.New("no user record for this account")      // caller routes to sign-up
	ErrOTPSendFailed    = errors.New("failed to send email OTP")             // 502 Bad Gateway
	ErrSessionInvalid   = errors.New("session is invalid or missing")        // caller routes to sign-in
	ErrCacheNotFound    = errors.New("session not found in cache")
)

// Validation errors (client input)
var (
	ErrEmailRequired     = errors.New("email is required")              // 400
	ErrFullNameRequired  = errors.New("full name is required")          // 400
	ErrAccountIDRequired = errors.New("pending account id is required") // 400
	ErrPasscodeRequired  = errors.New("passcode is required")           // 400
)

// Config errors (server-side configuration)
var (
	ErrDirectoryRequired   = errors.New("directory adapter is required")         // 500
	ErrIdentityRequired    = errors.New("identity provider adapter is required") // 500
	ErrHTTPAdapterRequired = errors.New("http adapter is required")              // 500
)
