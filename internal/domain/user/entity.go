package user

import (
	"net/mail"
	"strings"
	"time"

	"groupie/internal/domain"
)

const MinimumAge = 18

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Birthdate    *time.Time
	UserType     int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Sanitized drops the password hash before the user leaves the service layer.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

type NewUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Birthdate *time.Time
	UserType  int64
}

// Patch holds the fields of a partial update; nil means "leave unchanged".
type Patch struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Birthdate *time.Time
	UserType  *int64

	// PasswordHash is filled by the service from Password; only the hash is
	// ever written.
	PasswordHash *string
}

func (p Patch) Empty() bool {
	return p.Email == nil && p.Password == nil && p.PasswordHash == nil && p.FirstName == nil &&
		p.LastName == nil && p.Birthdate == nil && p.UserType == nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the registration fields and normalizes them in place.
func (n *NewUser) Validate(now time.Time) error {
	n.Email = NormalizeEmail(n.Email)
	n.FirstName = strings.TrimSpace(n.FirstName)
	n.LastName = strings.TrimSpace(n.LastName)

	var missing []string
	if n.Email == "" {
		missing = append(missing, "email")
	}
	if n.Password == "" {
		missing = append(missing, "password")
	}
	if n.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if n.LastName == "" {
		missing = append(missing, "last_name")
	}
	if n.UserType <= 0 {
		missing = append(missing, "user_type")
	}
	if len(missing) > 0 {
		return domain.Invalid("Missing required fields: %s", strings.Join(missing, ", "))
	}

	if err := ValidateEmail(n.Email); err != nil {
		return err
	}
	if n.Birthdate != nil {
		if err := ValidateAge(*n.Birthdate, now); err != nil {
			return err
		}
	}
	return nil
}

func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.Invalid("Invalid email address.")
	}
	return nil
}

// ValidateAge rejects birthdates younger than MinimumAge on the given day.
func ValidateAge(birthdate, now time.Time) error {
	if Age(birthdate, now) < MinimumAge {
		return domain.Invalid("You must be at least %d years old to register.", MinimumAge)
	}
	return nil
}

func Age(birthdate, now time.Time) int {
	by, bm, bd := birthdate.Date()
	ny, nm, nd := now.Date()
	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	return age
}
