package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	tokens map[string]*fbauth.Token
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, token string) (*fbauth.Token, error) {
	if t, ok := f.tokens[token]; ok {
		return t, nil
	}
	return nil, errors.New("invalid token")
}

type fakeRoles struct {
	roles map[string]string
	err   error
}

func (f fakeRoles) EnsureUser(_ context.Context, uid, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if r, ok := f.roles[uid]; ok {
		return r, nil
	}
	return auth.RoleViewer, nil
}

type fakeRow struct {
	val string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.val
	return nil
}

type fakeQuerier struct {
	row  fakeRow
	args []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.args = args
	return q.row
}

func TestRequireAdmin(t *testing.T) {
	_, err := auth.RequireAdmin(context.Background())
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.Equal(t, "auth: no signed-in user", err.Error())

	ctx := auth.WithIdentity(context.Background(), auth.Identity{UserID: "u1", Role: auth.RoleViewer})
	_, err = auth.RequireAdmin(ctx)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	ctx = auth.WithIdentity(context.Background(), auth.Identity{UserID: "u1", Role: auth.RoleAdmin})
	id, err := auth.RequireAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)

	ctx = auth.WithIdentity(context.Background(), auth.Identity{Role: auth.RoleAdmin})
	_, err = auth.RequireAdmin(ctx)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated, "an identity without a user id is anonymous")
}

func TestHeaderResolver(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok, err := auth.HeaderResolver{}.Resolve(req)
	require.NoError(t, err)
	assert.False(t, ok)

	req.Header.Set("X-User-Id", "dev")
	id, ok, _ := auth.HeaderResolver{}.Resolve(req)
	require.True(t, ok)
	assert.Equal(t, auth.RoleViewer, id.Role)

	req.Header.Set("X-User-Role", "Admin")
	id, _, _ = auth.HeaderResolver{}.Resolve(req)
	assert.Equal(t, auth.RoleAdmin, id.Role)
}

func TestFirebaseResolver(t *testing.T) {
	resolver := auth.FirebaseResolver{
		Verifier: fakeVerifier{tokens: map[string]*fbauth.Token{
			"good": {UID: "uid-1", Claims: map[string]interface{}{"email": "a@example.com"}},
		}},
		Roles: fakeRoles{roles: map[string]string{"uid-1": auth.RoleAdmin}},
	}

	t.Run("no header", func(t *testing.T) {
		_, ok, err := resolver.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		id, ok, err := resolver.Resolve(req)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, auth.Identity{UserID: "uid-1", Email: "a@example.com", Role: auth.RoleAdmin}, id)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer forged")
		_, ok, err := resolver.Resolve(req)
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("role lookup failure", func(t *testing.T) {
		r := resolver
		r.Roles = fakeRoles{err: errors.New("db down")}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		_, ok, err := r.Resolve(req)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestIdentifyAndRequireAdminMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(auth.Identify(auth.HeaderResolver{}))
	r.GET("/admin", auth.RequireAdminMiddleware(), func(c *gin.Context) {
		id, _ := auth.IdentityFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"ok": true, "user": id.UserID})
	})

	tests := []struct {
		name   string
		uid    string
		role   string
		status int
	}{
		{"anonymous", "", "", http.StatusUnauthorized},
		{"viewer", "v1", "viewer", http.StatusForbidden},
		{"admin", "a1", "admin", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.uid != "" {
				req.Header.Set("X-User-Id", tt.uid)
				req.Header.Set("X-User-Role", tt.role)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"redirect":"/admin/login"`)
			}
		})
	}
}

func TestRoleStore(t *testing.T) {
	ctx := context.Background()

	q := &fakeQuerier{row: fakeRow{val: "admin"}}
	role, err := auth.NewRoleStore(q).EnsureUser(ctx, "uid-1", "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", role)
	assert.Equal(t, []any{"uid-1", "a@example.com"}, q.args)

	_, err = auth.NewRoleStore(q).EnsureUser(ctx, "", "")
	assert.Error(t, err)

	_, err = auth.NewRoleStore(&fakeQuerier{row: fakeRow{err: errors.New("boom")}}).EnsureUser(ctx, "uid-2", "")
	assert.Error(t, err)
}
