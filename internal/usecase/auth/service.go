package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"groupie/internal/domain"
	"groupie/internal/domain/profile"
	"groupie/internal/domain/user"
)

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	cost  int
	now   func() time.Time
}

// NewService falls back to bcrypt.DefaultCost when cost is out of range.
func NewService(users user.Repository, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{users: users, cost: cost, now: time.Now}
}

// Register validates the input, hashes the password and stores the user
// together with an empty profile.
func (s *Service) Register(ctx context.Context, in user.NewUser) (user.User, profile.Profile, error) {
	if err := in.Validate(s.now()); err != nil {
		return user.User{}, profile.Profile{}, err
	}

	hash, err := user.HashPassword(in.Password, s.cost)
	if err != nil {
		return user.User{}, profile.Profile{}, err
	}

	created, prof, err := s.users.CreateWithProfile(ctx, user.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Birthdate:    in.Birthdate,
		UserType:     in.UserType,
	})
	if err != nil {
		return user.User{}, profile.Profile{}, err
	}
	return created.Sanitized(), prof, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := user.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, domain.ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return user.User{}, domain.ErrInvalidCredentials
		}
		return user.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, domain.ErrInvalidCredentials
	}
	return u.Sanitized(), nil
}
