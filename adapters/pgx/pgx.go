// Package pgx provides a PostgreSQL-backed Directory for deployments that
// keep user records in their own database instead of the managed backend.
package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeit/vaulted/core"
	"github.com/storeit/vaulted/pkg/crypto"
)

// Schema creates the users table. The unique index on email is what turns
// the sign-up check-then-act race into a detectable conflict.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id         text PRIMARY KEY,
	full_name  text NOT NULL,
	email      text NOT NULL,
	avatar     text NOT NULL DEFAULT '',
	account_id text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);
CREATE INDEX IF NOT EXISTS users_account_id_idx ON users (account_id);
`

type Adapter struct {
	pool   *pgxpool.Pool
	nanoid *crypto.NanoIDGenerator
}

var _ core.Directory = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool:   pool,
		nanoid: crypto.NewNanoID(),
	}
}
