package dto

import (
	"time"

	"groupie/internal/domain"
	"groupie/internal/domain/profile"
	"groupie/internal/domain/user"
)

const dateLayout = "2006-01-02"

// UserProfileSummary is the profile nested inside a user payload.
type UserProfileSummary struct {
	ID               int64   `json:"id"`
	Gender           string  `json:"gender"`
	Instruments      []int64 `json:"instruments"`
	ProficiencyLevel int64   `json:"proficiency_level"`
	Genres           []int64 `json:"genres"`
}

type UserResponse struct {
	ID        int64               `json:"id"`
	Email     string              `json:"email"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Birthday  *string             `json:"birthday"`
	UserType  int64               `json:"user_type"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Profile   *UserProfileSummary `json:"profile"`
}

func NewUserResponse(u user.User, p *profile.Profile) UserResponse {
	out := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserType:  u.UserType,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Birthdate != nil {
		b := u.Birthdate.Format(dateLayout)
		out.Birthday = &b
	}
	if p != nil {
		out.Profile = &UserProfileSummary{
			ID:               p.ID,
			Gender:           p.Gender,
			Instruments:      emptyIDs(p.Instruments),
			ProficiencyLevel: p.ProficiencyLevel,
			Genres:           emptyIDs(p.Genres),
		}
	}
	return out
}

// CreateUserRequest is shared by registration and the plain create route.
// Birthdate is accepted as an alias of birthday.
type CreateUserRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Birthday  *string `json:"birthday"`
	Birthdate *string `json:"birthdate"`
	UserType  int64   `json:"user_type"`
}

func (r CreateUserRequest) ToNewUser() (user.NewUser, error) {
	raw := r.Birthday
	if raw == nil {
		raw = r.Birthdate
	}
	bd, err := parseDate(raw)
	if err != nil {
		return user.NewUser{}, err
	}
	return user.NewUser{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Birthdate: bd,
		UserType:  r.UserType,
	}, nil
}

type UpdateUserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Birthday  *string `json:"birthday"`
	Birthdate *string `json:"birthdate"`
	UserType  *int64  `json:"user_type"`
}

func (r UpdateUserRequest) ToPatch() (user.Patch, error) {
	raw := r.Birthday
	if raw == nil {
		raw = r.Birthdate
	}
	bd, err := parseDate(raw)
	if err != nil {
		return user.Patch{}, err
	}
	return user.Patch{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Birthdate: bd,
		UserType:  r.UserType,
	}, nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		// full timestamps are accepted as well
		t, err = time.Parse(time.RFC3339, *raw)
		if err != nil {
			return nil, domain.Invalid("Invalid birthday, expected YYYY-MM-DD.")
		}
	}
	return &t, nil
}

func emptyIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
