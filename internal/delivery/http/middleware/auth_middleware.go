package middleware

import (
	"errors"
	"strings"

	"groupie/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

// Principal is the caller resolved from an access token.
type Principal struct {
	UserID int64
	Email  string
}

const principalKey = "principal"

// AuthMiddleware admits requests carrying a valid access token. Refresh
// tokens are refused so they cannot be used to swipe.
type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		p, err := m.principal(token)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token expired"
			}
			return NewAppError(fiber.StatusUnauthorized, msg, nil, err)
		}

		c.Locals(principalKey, p)
		return c.Next()
	}
}

func (m *AuthMiddleware) principal(token string) (Principal, error) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return Principal{}, err
	}
	if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) || claims.UserID <= 0 {
		return Principal{}, jwt.ErrTokenInvalid
	}
	return Principal{UserID: claims.UserID, Email: claims.Email}, nil
}

// PrincipalFromCtx returns the caller set by AuthMiddleware.
func PrincipalFromCtx(c fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(principalKey).(Principal)
	return p, ok && p.UserID > 0
}

func UserIDFromCtx(c fiber.Ctx) (int64, bool) {
	p, ok := PrincipalFromCtx(c)
	return p.UserID, ok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is case-insensitive.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
