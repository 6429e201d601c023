package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool the role store needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RoleStore records signed-in users and reads their role.
type RoleStore struct {
	db Querier
}

func NewRoleStore(db Querier) *RoleStore {
	return &RoleStore{db: db}
}

// UsersSchema creates the users table roles are read from.
const UsersSchema = `
create table if not exists users (
  id uuid primary key default gen_random_uuid(),
  firebase_uid text not null unique,
  email text,
  role text not null default 'viewer' check (role in ('admin', 'viewer')),
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
);
`

// EnsureUser upserts the user on sign-in and returns the stored role.
// New users start as viewers; promotion happens out of band.
func (s *RoleStore) EnsureUser(ctx context.Context, firebaseUID, email string) (string, error) {
	if firebaseUID == "" {
		return "", fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into users (firebase_uid, email, updated_at)
values ($1, nullif($2,''), now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, users.email),
  updated_at = now()
returning role;
`
	var role string
	if err := s.db.QueryRow(ctx, q, firebaseUID, email).Scan(&role); err != nil {
		return "", fmt.Errorf("ensure user: %w", err)
	}
	return role, nil
}
