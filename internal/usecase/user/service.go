package user

import (
	"context"
	"strings"
	"time"

	"groupie/internal/domain"
	"groupie/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users user.Repository
	cost  int
	now   func() time.Time
}

func NewService(users user.Repository, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{users: users, cost: cost, now: time.Now}
}

func (s *Service) Get(ctx context.Context, id int64) (user.User, error) {
	if id <= 0 {
		return user.User{}, domain.Invalid("Invalid user id.")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	return u.Sanitized(), nil
}

// Create stores a user without a profile. Registration goes through the
// auth service instead.
func (s *Service) Create(ctx context.Context, in user.NewUser) (user.User, error) {
	if err := in.Validate(s.now()); err != nil {
		return user.User{}, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return user.User{}, err
	}

	created, err := s.users.Create(ctx, user.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Birthdate:    in.Birthdate,
		UserType:     in.UserType,
	})
	if err != nil {
		return user.User{}, err
	}
	return created.Sanitized(), nil
}

func (s *Service) Update(ctx context.Context, id int64, p user.Patch) (user.User, error) {
	if id <= 0 {
		return user.User{}, domain.Invalid("Invalid user id.")
	}
	p.PasswordHash = nil
	if p.Empty() {
		return user.User{}, domain.Invalid("No updates provided")
	}

	if p.Email != nil {
		email := user.NormalizeEmail(*p.Email)
		if err := user.ValidateEmail(email); err != nil {
			return user.User{}, err
		}
		p.Email = &email
	}
	var err error
	if p.FirstName, err = trimRequired("first_name", p.FirstName); err != nil {
		return user.User{}, err
	}
	if p.LastName, err = trimRequired("last_name", p.LastName); err != nil {
		return user.User{}, err
	}
	if p.Birthdate != nil {
		if err := user.ValidateAge(*p.Birthdate, s.now()); err != nil {
			return user.User{}, err
		}
	}
	if p.UserType != nil && *p.UserType <= 0 {
		return user.User{}, domain.Invalid("Invalid user type.")
	}
	if p.Password != nil {
		if *p.Password == "" {
			return user.User{}, domain.Invalid("password cannot be empty.")
		}
		hash, err := s.hash(*p.Password)
		if err != nil {
			return user.User{}, err
		}
		p.PasswordHash = &hash
		p.Password = nil
	}

	updated, err := s.users.Update(ctx, id, p)
	if err != nil {
		return user.User{}, err
	}
	return updated.Sanitized(), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.Invalid("Invalid user id.")
	}
	ok, err := s.users.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrDeleteFailed
	}
	return nil
}

func (s *Service) hash(pw string) (string, error) {
	return user.HashPassword(pw, s.cost)
}

func trimRequired(field string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil, domain.Invalid("%s cannot be empty.", field)
	}
	return &trimmed, nil
}
