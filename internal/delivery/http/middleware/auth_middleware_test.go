package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"groupie/internal/pkg/jwt"
	"groupie/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	cases := map[string]struct {
		header string
		token  string
		ok     bool
	}{
		"plain":         {"Bearer abc", "abc", true},
		"lower scheme":  {"  bearer   abc ", "abc", true},
		"empty":         {"", "", false},
		"no token":      {"Bearer ", "", false},
		"other scheme":  {"Basic abc", "", false},
		"missing space": {"Bearerabc", "", false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			token, ok := BearerToken(tc.header)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.token, token)
		})
	}
}

func TestAuthMiddleware_SetsPrincipal(t *testing.T) {
	svc := jwt.NewHMACService("access", "refresh", time.Minute, time.Hour)
	app := fiber.New()
	app.Use(NewErrorMiddleware(logger.Discard()).Middleware())
	app.Get("/me", NewAuthMiddleware(svc).Middleware(), func(c fiber.Ctx) error {
		p, ok := PrincipalFromCtx(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(p.Email)
	})

	access, err := svc.GenerateAccessToken(7, "kim@example.com")
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{"access token", access, http.StatusOK},
		{"refresh token", refresh, http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
