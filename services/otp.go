package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storeit/vaulted/core"
)

// OTPIssuer requests one-time email passcodes from the identity provider.
type OTPIssuer struct {
	identity core.Identity
	logger   *slog.Logger
}

func NewOTPIssuer(identity core.Identity, logger *slog.Logger) *OTPIssuer {
	if logger == nil {
		logger = slog.Default()
	}
	return &OTPIssuer{identity: identity, logger: logger}
}

// SendEmailOTP asks the provider to mint a one-time token for a fresh
// anonymous identity and returns the pending account id. Provider failures
// are logged and surfaced as core.ErrOTPSendFailed.
func (i *OTPIssuer) SendEmailOTP(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", core.ErrEmailRequired
	}

	token, err := i.identity.CreateEmailToken(ctx, email)
	if err != nil {
		i.logger.ErrorContext(ctx, "failed to send email OTP", "email", email, "error", err)
		return "", fmt.Errorf("%w: %v", core.ErrOTPSendFailed, err)
	}

	return token.UserID, nil
}
