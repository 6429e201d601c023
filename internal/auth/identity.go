package auth

import (
	"context"
	"errors"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Copy shown to callers rejected by the admin guard.
const (
	MsgSignIn    = "Please sign in to continue"
	MsgForbidden = "You do not have permission to perform this action"
	LoginPath    = "/admin/login"
)

var (
	ErrUnauthenticated = errors.New("auth: no signed-in user")
	ErrUnauthorized    = errors.New("auth: admin role required")
)

// Identity is the caller resolved from the request credentials.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}

// RequireAdmin returns ErrUnauthenticated when ctx carries no identity and
// ErrUnauthorized when the identity is not an admin.
func RequireAdmin(ctx context.Context) (Identity, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	if !id.IsAdmin() {
		return id, ErrUnauthorized
	}
	return id, nil
}
