package appwrite

import (
	"context"
	"net/http"

	"github.com/storeit/vaulted/core"
)

// CreateEmailToken mints a one-time email passcode for a fresh anonymous
// identity and returns the pending account id. Requires an admin client.
func (c *Client) CreateEmailToken(ctx context.Context, email string) (*core.ProviderToken, error) {
	body := map[string]string{
		"userId": uniqueID,
		"email":  email,
	}

	var out struct {
		UserID string `json:"userId"`
		Expire string `json:"expire"`
	}
	if err := c.do(ctx, http.MethodPost, "/account/tokens/email", body, &out); err != nil {
		return nil, err
	}

	return &core.ProviderToken{
		UserID:    out.UserID,
		ExpiresAt: parseTime(out.Expire),
	}, nil
}

// CreateSession exchanges a pending account id and the entered passcode for
// a session. The returned secret goes into the session cookie.
func (c *Client) CreateSession(ctx context.Context, accountID, passcode string) (*core.Session, error) {
	body := map[string]string{
		"userId": accountID,
		"secret": passcode,
	}

	var out struct {
		ID     string `json:"$id"`
		Secret string `json:"secret"`
	}
	if err := c.do(ctx, http.MethodPost, "/account/sessions/token", body, &out); err != nil {
		return nil, err
	}

	return &core.Session{ID: out.ID, Secret: out.Secret}, nil
}

// CurrentAccountID resolves a session secret to the provider account id by
// fetching the account object with a session-scoped client.
func (c *Client) CurrentAccountID(ctx context.Context, secret string) (string, error) {
	var out struct {
		ID string `json:"$id"`
	}
	if err := c.WithSession(secret).do(ctx, http.MethodGet, "/account", nil, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// DeleteSession invalidates the session behind the secret.
func (c *Client) DeleteSession(ctx context.Context, secret string) error {
	return c.WithSession(secret).do(ctx, http.MethodDelete, "/account/sessions/current", nil, nil)
}
