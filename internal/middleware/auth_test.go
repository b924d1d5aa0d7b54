package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/services"
)

func TestProtected(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)

	app := fiber.New()
	app.Get("/guarded", Protected(tokens), func(c *fiber.Ctx) error {
		claims := Claims(c)
		return c.JSON(fiber.Map{"userId": claims.UserID.String(), "role": claims.Role})
	})

	request := func(authorization string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		if authorization != "" {
			req.Header.Set(fiber.HeaderAuthorization, authorization)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("missing header is unauthorized", func(t *testing.T) {
		resp := request("")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Требуется авторизация")
	})

	t.Run("bare Bearer prefix is unauthorized", func(t *testing.T) {
		resp := request("Bearer ")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbled token is unauthorized", func(t *testing.T) {
		resp := request("Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Недействительный токен")
	})

	t.Run("token signed with another secret is unauthorized", func(t *testing.T) {
		other := services.NewTokenService("other-secret", time.Hour)
		signed, err := other.Issue(uuid.New(), models.RoleAdmin)
		require.NoError(t, err)

		resp := request("Bearer " + signed)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token passes with claims in locals", func(t *testing.T) {
		userID := uuid.New()
		signed, err := tokens.Issue(userID, models.RoleLine)
		require.NoError(t, err)

		resp := request("Bearer " + signed)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), userID.String())
		assert.Contains(t, string(body), "line")
	})
}

func TestRequire(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)

	app := fiber.New()
	app.Get("/admin-only",
		Protected(tokens),
		Require(func(caps models.Capabilities) bool { return caps.CanManageUsers }),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	app.Get("/unguarded", Require(func(models.Capabilities) bool { return true }), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	request := func(target, token string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if token != "" {
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("missing capability is forbidden", func(t *testing.T) {
		signed, err := tokens.Issue(uuid.New(), models.RoleLine)
		require.NoError(t, err)

		resp := request("/admin-only", signed)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Недостаточно прав")
	})

	t.Run("admin passes through", func(t *testing.T) {
		signed, err := tokens.Issue(uuid.New(), models.RoleAdmin)
		require.NoError(t, err)

		resp := request("/admin-only", signed)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("op lacks user management", func(t *testing.T) {
		signed, err := tokens.Issue(uuid.New(), models.RoleOp)
		require.NoError(t, err)

		resp := request("/admin-only", signed)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("without a session the check is unauthorized, not forbidden", func(t *testing.T) {
		resp := request("/unguarded", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
