package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"groupie/internal/domain"
	"groupie/internal/domain/profile"
	"groupie/internal/domain/user"
	"groupie/internal/pkg/jwt"
	ucauth "groupie/internal/usecase/auth"
)

// Session is an authenticated user plus a fresh token pair.
type Session struct {
	User         user.User
	Profile      *profile.Profile
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in user.NewUser) (Session, error)
	Login(ctx context.Context, in ucauth.LoginInput) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service, bcryptCost int) *Auth {
	return &Auth{authSvc: ucauth.NewService(users, bcryptCost), users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in user.NewUser) (Session, error) {
	usr, prof, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return Session{}, err
	}

	s, err := u.issue(usr)
	if err != nil {
		return Session{}, err
	}
	s.Profile = &prof
	return s, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (Session, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.issue(usr)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", "", ErrInvalidRefreshToken
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", err
	}

	s, err := u.issue(usr)
	if err != nil {
		return "", "", err
	}
	return s.AccessToken, s.RefreshToken, nil
}

func (u *Auth) issue(usr user.User) (Session, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue access token for user %d: %w", usr.ID, err)
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return Session{}, fmt.Errorf("issue refresh token for user %d: %w", usr.ID, err)
	}
	return Session{User: usr.Sanitized(), AccessToken: access, RefreshToken: refresh}, nil
}
