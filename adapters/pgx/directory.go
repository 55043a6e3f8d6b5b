package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/storeit/vaulted/core"
)

// uniqueViolation is the SQLSTATE raised by the email unique index.
const uniqueViolation = "23505"

func (a *Adapter) CreateUser(ctx context.Context, user *core.UserRecord) error {
	if user.ID == "" {
		id, err := a.nanoid.Generate()
		if err != nil {
			return err
		}
		user.ID = id
	}

	q := `INSERT INTO users (id, full_name, email, avatar, account_id) VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`
	var createdAt, updatedAt time.Time

	err := a.pool.QueryRow(ctx, q, user.ID, user.FullName, user.Email, user.Avatar, user.AccountID).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return core.ErrUserExists
		}
		return err
	}

	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	return nil
}

func (a *Adapter) FindUserByEmail(ctx context.Context, email string) (*core.UserRecord, error) {
	q := `SELECT id, full_name, email, avatar, account_id, created_at, updated_at FROM users WHERE email = $1`
	return a.scanUser(a.pool.QueryRow(ctx, q, email))
}

func (a *Adapter) FindUserByAccountID(ctx context.Context, accountID string) (*core.UserRecord, error) {
	q := `SELECT id, full_name, email, avatar, account_id, created_at, updated_at FROM users WHERE account_id = $1 LIMIT 1`
	return a.scanUser(a.pool.QueryRow(ctx, q, accountID))
}

func (a *Adapter) scanUser(row pgx.Row) (*core.UserRecord, error) {
	user := &core.UserRecord{}
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Avatar, &user.AccountID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
