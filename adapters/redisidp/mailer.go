package redisidp

import (
	"context"
	"log/slog"
)

// Mailer delivers one-time passcodes to users.
type Mailer interface {
	SendPasscode(ctx context.Context, email, code string) error
}

// LogMailer writes passcodes to the log instead of sending mail.
// Development only.
type LogMailer struct {
	logger *slog.Logger
}

var _ Mailer = (*LogMailer)(nil)

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendPasscode(ctx context.Context, email, code string) error {
	m.logger.InfoContext(ctx, "one-time passcode issued", "email", email, "code", code)
	return nil
}
