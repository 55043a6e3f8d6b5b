package services

import (
	"context"

	"github.com/storeit/vaulted/core"
)

// AccountResolver maps an email address to an existing directory record, or
// decides none exists.
type AccountResolver struct {
	directory core.Directory
}

func NewAccountResolver(directory core.Directory) *AccountResolver {
	return &AccountResolver{directory: directory}
}

// FindUserByEmail queries the directory for the record whose email equals
// the argument. Returns core.ErrUserNotFound on zero matches. Transport
// failures from the directory propagate; the workflow layer decides whether
// they are fatal.
func (r *AccountResolver) FindUserByEmail(ctx context.Context, email string) (*core.UserRecord, error) {
	if email == "" {
		return nil, core.ErrEmailRequired
	}
	return r.directory.FindUserByEmail(ctx, email)
}

// FindUserByAccountID looks up the record created for a provider account id.
func (r *AccountResolver) FindUserByAccountID(ctx context.Context, accountID string) (*core.UserRecord, error) {
	if accountID == "" {
		return nil, core.ErrAccountIDRequired
	}
	return r.directory.FindUserByAccountID(ctx, accountID)
}
