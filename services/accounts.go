package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/storeit/vaulted/core"
	"github.com/storeit/vaulted/pkg/crypto"
)

// AccountService composes the resolver and the OTP issuer into the account
// workflows: sign-up, sign-in, OTP verification, current-user lookup, and
// sign-out. Each runs as a short ordered sequence of remote calls within one
// inbound request; there is no internal parallelism and no rollback.
type AccountService struct {
	resolver  *AccountResolver
	issuer    *OTPIssuer
	directory core.Directory
	identity  core.Identity
	cache     core.Cache // optional, nil disables caching
	logger    *slog.Logger
}

// Ensure AccountService implements AccountHandler
var _ core.AccountHandler = (*AccountService)(nil)

func NewAccountService(directory core.Directory, identity core.Identity, cache core.Cache, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		resolver:  NewAccountResolver(directory),
		issuer:    NewOTPIssuer(identity, logger),
		directory: directory,
		identity:  identity,
		cache:     cache,
		logger:    logger,
	}
}

// CreateAccount starts a sign-up: it issues an OTP for the email and, for a
// first sign-up, creates the directory record. The returned account id is a
// pending identifier; no session exists until the passcode is verified.
func (s *AccountService) CreateAccount(ctx context.Context, input core.SignUpInput) (*core.SignUpResult, error) {
	if input.Email == "" {
		return nil, core.ErrEmailRequired
	}
	if input.FullName == "" {
		return nil, core.ErrFullNameRequired
	}

	// Step 1: resolve any existing record for this email
	existing, err := s.resolver.FindUserByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	// Step 2: issue the OTP before touching the directory, so a send
	// failure leaves no record behind
	accountID, err := s.issuer.SendEmailOTP(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	// Step 3: first sign-up for this email creates the record
	if existing == nil {
		user := &core.UserRecord{
			FullName:  input.FullName,
			Email:     input.Email,
			Avatar:    core.AvatarURL(input.FullName),
			AccountID: accountID,
		}
		if err := s.directory.CreateUser(ctx, user); err != nil {
			// A concurrent sign-up can win the race between the existence
			// check and the insert; the record exists either way.
			if !errors.Is(err, core.ErrUserExists) {
				return nil, fmt.Errorf("failed to create user: %w", err)
			}
		}
	}

	// A repeat sign-up issues a brand-new provider identity unrelated to
	// the record's stored accountId, while SignIn returns the stored one.
	// TODO: confirm with product whether repeat sign-ups should reuse the
	// stored accountId instead of minting a second provider identity.
	return &core.SignUpResult{AccountID: accountID}, nil
}

// SignIn issues a fresh OTP for an existing record. When no record exists
// for the email, it returns core.ErrUserNotFound without issuing an OTP;
// callers route that to the sign-up flow.
func (s *AccountService) SignIn(ctx context.Context, input core.SignInInput) (*core.SignInResult, error) {
	if input.Email == "" {
		return nil, core.ErrEmailRequired
	}

	user, err := s.resolver.FindUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.issuer.SendEmailOTP(ctx, input.Email); err != nil {
		return nil, err
	}

	// The record's stored accountId, not the freshly issued pending id.
	return &core.SignInResult{AccountID: user.AccountID}, nil
}

// VerifyOTP exchanges a pending account id and the entered passcode for a
// session. On success the caller stores the secret in the session cookie.
func (s *AccountService) VerifyOTP(ctx context.Context, input core.VerifyInput) (*core.VerifyResult, error) {
	if input.AccountID == "" {
		return nil, core.ErrAccountIDRequired
	}
	if input.Passcode == "" {
		return nil, core.ErrPasscodeRequired
	}

	session, err := s.identity.CreateSession(ctx, input.AccountID, input.Passcode)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to verify email OTP", "accountId", input.AccountID, "error", err)
		return nil, fmt.Errorf("failed to verify OTP: %w", err)
	}

	return &core.VerifyResult{
		SessionID: session.ID,
		Secret:    session.Secret,
	}, nil
}

// CurrentUser resolves the session secret to the caller's directory record.
// Returns core.ErrSessionInvalid when the provider rejects the session and
// core.ErrUserNotOnboarded when the account has no directory record; callers
// route those to the sign-in and sign-up flows respectively.
func (s *AccountService) CurrentUser(ctx context.Context, secret string) (*core.UserRecord, error) {
	if secret == "" {
		return nil, core.ErrSessionInvalid
	}

	secretHash := crypto.HashToken(secret)
	if s.cache != nil {
		if user, err := s.cache.Get(secretHash); err == nil && user != nil {
			return user, nil
		}
	}

	accountID, err := s.identity.CurrentAccountID(ctx, secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSessionInvalid, err)
	}

	user, err := s.resolver.FindUserByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			// Authenticated with the provider but never onboarded.
			return nil, core.ErrUserNotOnboarded
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if s.cache != nil {
		// Caching failures never fail the lookup
		_ = s.cache.Set(secretHash, user)
	}

	return user, nil
}

// SignOut deletes the provider session. Cookie clearing and the navigation
// back to sign-in are the HTTP adapter's job and happen regardless of the
// outcome here.
func (s *AccountService) SignOut(ctx context.Context, secret string) error {
	if s.cache != nil {
		_ = s.cache.Delete(crypto.HashToken(secret))
	}

	if err := s.identity.DeleteSession(ctx, secret); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete session", "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
