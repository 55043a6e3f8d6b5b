// Package redisidp is a self-hosted implementation of the identity port:
// one-time email passcodes and sessions kept in Redis with TTLs, for
// deployments that do not use the managed backend.
package redisidp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/storeit/vaulted/core"
	"github.com/storeit/vaulted/pkg/crypto"
)

var (
	ErrTokenNotFound    = errors.New("otp token not found or expired")
	ErrInvalidPasscode  = errors.New("invalid passcode")
	ErrAttemptsExceeded = errors.New("passcode attempts exceeded")
	ErrSessionNotFound  = errors.New("session not found or expired")
)

type Config struct {
	OTPDigits   int
	OTPTTL      time.Duration
	MaxAttempts int
	SessionTTL  time.Duration
	KeyPrefix   string
}

func DefaultConfig() Config {
	return Config{
		OTPDigits:   crypto.DefaultPasscodeDigits,
		OTPTTL:      15 * time.Minute,
		MaxAttempts: 5,
		SessionTTL:  30 * 24 * time.Hour,
		KeyPrefix:   "vaulted",
	}
}

// Provider mints OTP tokens and sessions backed by Redis.
type Provider struct {
	redis  *redis.Client
	mailer Mailer
	hasher *crypto.PasscodeHasher
	config Config
	logger *slog.Logger
}

var _ core.Identity = (*Provider)(nil)

func New(redisClient *redis.Client, mailer Mailer, config Config, logger *slog.Logger) *Provider {
	if config.OTPDigits <= 0 {
		config.OTPDigits = crypto.DefaultPasscodeDigits
	}
	if config.OTPTTL <= 0 {
		config.OTPTTL = 15 * time.Minute
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 30 * 24 * time.Hour
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "vaulted"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		redis:  redisClient,
		mailer: mailer,
		hasher: crypto.NewPasscodeHasher(),
		config: config,
		logger: logger,
	}
}

// otpRecord is the stored shape of a pending passcode. The passcode itself
// is kept only as an argon2id hash.
type otpRecord struct {
	Email    string `json:"email"`
	CodeHash string `json:"codeHash"`
	Attempts int    `json:"attempts"`
}

type sessionRecord struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
}

func (p *Provider) otpKey(accountID string) string {
	return p.config.KeyPrefix + ":otp:" + accountID
}

func (p *Provider) sessionKey(secretHash string) string {
	return p.config.KeyPrefix + ":sess:" + secretHash
}

// CreateEmailToken mints a fresh anonymous identity, stores the hashed
// passcode under a TTL, and mails the code.
func (p *Provider) CreateEmailToken(ctx context.Context, email string) (*core.ProviderToken, error) {
	accountID := uuid.NewString()

	code, err := crypto.GeneratePasscode(p.config.OTPDigits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate passcode: %w", err)
	}

	codeHash, err := p.hasher.Hash(code)
	if err != nil {
		return nil, fmt.Errorf("failed to hash passcode: %w", err)
	}

	encoded, err := json.Marshal(otpRecord{Email: email, CodeHash: codeHash})
	if err != nil {
		return nil, err
	}

	if err := p.redis.Set(ctx, p.otpKey(accountID), encoded, p.config.OTPTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store otp record: %w", err)
	}

	if err := p.mailer.SendPasscode(ctx, email, code); err != nil {
		// No orphaned token when the mail never went out
		_ = p.redis.Del(ctx, p.otpKey(accountID)).Err()
		return nil, fmt.Errorf("failed to mail passcode: %w", err)
	}

	return &core.ProviderToken{
		UserID:    accountID,
		ExpiresAt: time.Now().Add(p.config.OTPTTL),
	}, nil
}

// CreateSession exchanges a pending account id and passcode for a session.
// The OTP record is consumed on success and after too many bad attempts.
func (p *Provider) CreateSession(ctx context.Context, accountID, passcode string) (*core.Session, error) {
	encoded, err := p.redis.Get(ctx, p.otpKey(accountID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to load otp record: %w", err)
	}

	var record otpRecord
	if err := json.Unmarshal(encoded, &record); err != nil {
		return nil, fmt.Errorf("failed to decode otp record: %w", err)
	}

	if record.Attempts >= p.config.MaxAttempts {
		_ = p.redis.Del(ctx, p.otpKey(accountID)).Err()
		return nil, ErrAttemptsExceeded
	}

	ok, err := p.hasher.Verify(passcode, record.CodeHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify passcode: %w", err)
	}
	if !ok {
		record.Attempts++
		if updated, err := json.Marshal(record); err == nil {
			_ = p.redis.Set(ctx, p.otpKey(accountID), updated, redis.KeepTTL).Err()
		}
		p.logger.WarnContext(ctx, "rejected passcode", "accountId", accountID, "attempts", record.Attempts)
		return nil, ErrInvalidPasscode
	}

	// Passcode accepted: consume the token and mint the session
	_ = p.redis.Del(ctx, p.otpKey(accountID)).Err()

	pair, err := crypto.GenerateHashedToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}

	session := sessionRecord{ID: uuid.NewString(), AccountID: accountID}
	stored, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	if err := p.redis.Set(ctx, p.sessionKey(pair.Hash), stored, p.config.SessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &core.Session{ID: session.ID, Secret: pair.Token}, nil
}

// CurrentAccountID resolves a session secret to its account id.
func (p *Provider) CurrentAccountID(ctx context.Context, secret string) (string, error) {
	encoded, err := p.redis.Get(ctx, p.sessionKey(crypto.HashToken(secret))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	var session sessionRecord
	if err := json.Unmarshal(encoded, &session); err != nil {
		return "", fmt.Errorf("failed to decode session: %w", err)
	}
	return session.AccountID, nil
}

// DeleteSession invalidates the session behind the secret. Deleting an
// already-expired session is not an error.
func (p *Provider) DeleteSession(ctx context.Context, secret string) error {
	return p.redis.Del(ctx, p.sessionKey(crypto.HashToken(secret))).Err()
}
