package handler

import (
	"errors"

	"groupie/internal/delivery/http/dto"
	"groupie/internal/delivery/http/middleware"
	"groupie/internal/pkg/response"
	"groupie/internal/usecase"
	ucauth "groupie/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	in, err := req.ToNewUser()
	if err != nil {
		return mapError(err)
	}

	s, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return mapError(err)
	}

	return response.Created(c, "User registered", dto.AuthResponse{
		User:         dto.NewUserResponse(s.User, s.Profile),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	s, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapError(err)
	}

	return response.Send(c, fiber.StatusOK, "Login successful", dto.AuthResponse{
		User:         dto.NewUserResponse(s.User, nil),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	})
}

// Refresh reads the refresh token from the JSON body, falling back to the
// Authorization header.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest("Invalid request payload", err)
		}
	}
	tok := req.RefreshToken
	if tok == "" {
		var ok bool
		if tok, ok = middleware.BearerToken(c.Get("Authorization")); !ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRefreshTokenExpired):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		case errors.Is(err, usecase.ErrInvalidRefreshToken):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		default:
			return mapError(err)
		}
	}

	return response.OK(c, dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}
