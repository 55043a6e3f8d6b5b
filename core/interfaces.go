package core

import (
	"context"
)

// Ports define interfaces for external dependencies

// ============================================
// DIRECTORY PORT (document store)
// ============================================

// Directory is the document store holding user records, queried by
// equality filters with zero-or-one-match semantics.
type Directory interface {
	// FindUserByEmail returns the record whose email equals the argument,
	// or ErrUserNotFound when there is no match.
	FindUserByEmail(ctx context.Context, email string) (*UserRecord, error)

	// FindUserByAccountID returns the record created for the given
	// provider account id, or ErrUserNotFound.
	FindUserByAccountID(ctx context.Context, accountID string) (*UserRecord, error)

	// CreateUser inserts a new record and fills in its ID and timestamps.
	// Implementations that enforce email uniqueness return ErrUserExists
	// on conflict.
	CreateUser(ctx context.Context, user *UserRecord) error
}

// ============================================
// IDENTITY PORT (auth provider)
// ============================================

// Identity is the provider issuing email one-time tokens and sessions.
type Identity interface {
	// CreateEmailToken mints a one-time passcode for a fresh anonymous
	// identity and emails it to the address. The returned token carries
	// the pending account id.
	CreateEmailToken(ctx context.Context, email string) (*ProviderToken, error)

	// CreateSession exchanges a pending account id and the entered
	// passcode for a session.
	CreateSession(ctx context.Context, accountID, passcode string) (*Session, error)

	// CurrentAccountID resolves a session secret to the provider account
	// id it belongs to.
	CurrentAccountID(ctx context.Context, secret string) (string, error)

	// DeleteSession invalidates the session behind the secret.
	DeleteSession(ctx context.Context, secret string) error
}

// ============================================
// CACHE PORT
// ============================================

// Cache spares a provider+directory round-trip on current-user lookups.
// Keys are hashes of session secrets, never the raw secret.
type Cache interface {
	Get(secretHash string) (*UserRecord, error)
	Set(secretHash string, user *UserRecord) error
	Delete(secretHash string) error
	Clear() error
}

// CacheWithStats extends Cache with statistics tracking
type CacheWithStats interface {
	Cache
	Stats() CacheStats
}

// ============================================
// ACCOUNT HANDLER (for HTTP adapters)
// ============================================

// AccountHandler provides the account workflows for HTTP adapters
type AccountHandler interface {
	CreateAccount(ctx context.Context, input SignUpInput) (*SignUpResult, error)
	SignIn(ctx context.Context, input SignInInput) (*SignInResult, error)
	VerifyOTP(ctx context.Context, input VerifyInput) (*VerifyResult, error)
	CurrentUser(ctx context.Context, secret string) (*UserRecord, error)
	SignOut(ctx context.Context, secret string) error
}

// ============================================
// HTTP PORT
// ============================================

type HTTPAdapter interface {
	RegisterRoutes(handler AccountHandler, basePath string) error
}
