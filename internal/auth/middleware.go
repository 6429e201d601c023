package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/logging"
)

// Resolver turns request credentials into an Identity. ok is false when the
// request carries no usable credentials.
type Resolver interface {
	Resolve(r *http.Request) (id Identity, ok bool, err error)
}

// Identify attaches the caller identity to the request context. It never
// rejects a request; handlers decide what an anonymous caller may do.
func Identify(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok, err := resolver.Resolve(c.Request)
		if err != nil {
			logging.NewLogger(c.Request.Context()).LogWarnf("Identify", "credentials rejected: %v", err)
		}
		if ok {
			c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		}
		c.Next()
	}
}

// RequireAdminMiddleware aborts non-admin requests with the same envelope the
// mutation endpoints use.
func RequireAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := RequireAdmin(c.Request.Context())
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, ErrUnauthenticated):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": MsgSignIn, "redirect": LoginPath})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": MsgForbidden})
		}
	}
}

// RoleSource resolves the role of a signed-in user.
type RoleSource interface {
	EnsureUser(ctx context.Context, firebaseUID, email string) (string, error)
}

// FirebaseResolver verifies Bearer ID tokens and looks the role up in the users table.
type FirebaseResolver struct {
	Verifier TokenVerifier
	Roles    RoleSource
}

func (f FirebaseResolver) Resolve(r *http.Request) (Identity, bool, error) {
	token := extractToken(r)
	if token == "" {
		return Identity{}, false, nil
	}
	ctx := r.Context()
	decoded, err := f.Verifier.VerifyIDToken(ctx, token)
	if err != nil {
		return Identity{}, false, err
	}
	email, _ := decoded.Claims["email"].(string)
	role, err := f.Roles.EnsureUser(ctx, decoded.UID, email)
	if err != nil {
		return Identity{}, false, err
	}
	return Identity{UserID: decoded.UID, Email: email, Role: role}, true, nil
}

// HeaderResolver trusts the X-User-Id and X-User-Role headers.
// Use this ONLY for development/testing.
type HeaderResolver struct{}

func (HeaderResolver) Resolve(r *http.Request) (Identity, bool, error) {
	uid := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if uid == "" {
		return Identity{}, false, nil
	}
	role := strings.ToLower(strings.TrimSpace(r.Header.Get("X-User-Role")))
	if role != RoleAdmin {
		role = RoleViewer
	}
	return Identity{UserID: uid, Email: r.Header.Get("X-User-Email"), Role: role}, true, nil
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(r *http.Request) string {
	bearerToken := r.Header.Get("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
