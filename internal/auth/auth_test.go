package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/directory-admin/internal/events"
	apperrors "github.com/spec-kit/directory-admin/pkg/util/errorutil"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	token, exp, err := tm.GenerateToken("admin-1", RoleAdmin)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.SubjectID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenManager("one", 5).GenerateToken("admin-1", RoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenManager("two", 5).ParseToken(token)
	assert.Error(t, err)
}

func TestBcryptHasher_HashesAndVerifies(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "other"))
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost)
}

func newProtectedApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/admin/ping", NewAuthMiddleware(tm).Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		actor, _ := events.ActorFromContext(c.UserContext())
		return c.SendString(actor.AdminID)
	})
	return app
}

func TestMiddleware_AdminAccess(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	app := newProtectedApp(tm)

	adminToken, _, err := tm.GenerateToken("admin-7", RoleAdmin)
	require.NoError(t, err)
	userToken, _, err := tm.GenerateToken("user-1", "USER")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"non admin", "Bearer " + userToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
