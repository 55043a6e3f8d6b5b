// Package vaulted implements email OTP account management for the StoreIt
// storage app: sign-up, sign-in, passcode verification, current-user
// resolution, and sign-out, orchestrated over a user directory and an
// identity provider.
package vaulted

import (
	"log/slog"
	"time"

	"github.com/storeit/vaulted/core"
	"github.com/storeit/vaulted/services"
)

// interfaces
type (
	Directory = core.Directory
	Identity  = core.Identity
	Cache     = core.Cache

	HTTPAdapter = core.HTTPAdapter

	AccountHandler = core.AccountHandler
)

// structs
type (
	CacheConfig = core.CacheConfig
	CookieSpec  = core.CookieSpec
)

type (
	UserRecord    = core.UserRecord
	Session       = core.Session
	ProviderToken = core.ProviderToken
	SignUpInput   = core.SignUpInput
	SignUpResult  = core.SignUpResult
	SignInInput   = core.SignInInput
	SignInResult  = core.SignInResult
	VerifyInput   = core.VerifyInput
	VerifyResult  = core.VerifyResult
	CacheStats    = core.CacheStats
)

const defaultBasePath = "/api/auth"

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache  = core.NewInMemoryCache
	DefaultCookieSpec = core.DefaultCookieSpec
	AvatarURL         = core.AvatarURL
)

var (
	ErrUserExists       = core.ErrUserExists
	ErrUserNotFound     = core.ErrUserNotFound
	ErrUserNotOnboarded = core.ErrUserNotOnboarded
	ErrOTPSendFailed    = core.ErrOTPSendFailed
	ErrSessionInvalid   = core.ErrSessionInvalid
	ErrCacheNotFound    = core.ErrCacheNotFound
)

var (
	ErrEmailRequired     = core.ErrEmailRequired
	ErrFullNameRequired  = core.ErrFullNameRequired
	ErrAccountIDRequired = core.ErrAccountIDRequired
	ErrPasscodeRequired  = core.ErrPasscodeRequired
)

var (
	ErrDirectoryRequired   = core.ErrDirectoryRequired
	ErrIdentityRequired    = core.ErrIdentityRequired
	ErrHTTPAdapterRequired = core.ErrHTTPAdapterRequired
)

// Config wires the adapters a Vaulted instance runs on. Directory, Identity,
// and HTTP are required; everything else has defaults.
type Config struct {
	Directory Directory
	Identity  Identity
	HTTP      HTTPAdapter

	// CacheAdapter overrides the default in-memory session cache.
	CacheAdapter Cache
	DisableCache bool

	Logger   *slog.Logger
	BasePath string
}

// Vaulted is the assembled account-management service.
type Vaulted struct {
	Accounts AccountHandler
	BasePath string
}

func New(config Config) (*Vaulted, error) {
	if config.Directory == nil {
		return nil, ErrDirectoryRequired
	}
	if config.Identity == nil {
		return nil, ErrIdentityRequired
	}
	if config.HTTP == nil {
		return nil, ErrHTTPAdapterRequired
	}

	// Set Defaults

	cacheAdapter := config.CacheAdapter
	if cacheAdapter == nil && !config.DisableCache {
		cacheAdapter = NewInMemoryCache(CacheConfig{
			TTL:     5 * time.Minute,
			MaxSize: 500,
		})
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	accounts := services.NewAccountService(
		config.Directory,
		config.Identity,
		cacheAdapter,
		logger,
	)

	vaulted := &Vaulted{
		Accounts: accounts,
		BasePath: basePath,
	}

	if err := config.HTTP.RegisterRoutes(accounts, basePath); err != nil {
		return nil, err
	}

	return vaulted, nil
}
