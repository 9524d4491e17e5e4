package user

import (
	"errors"

	"groupie/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes pw with bcrypt. bcrypt only reads the first 72 bytes,
// so longer passwords are a validation error instead of a silent truncation.
func HashPassword(pw string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.Invalid("Password must be at most 72 bytes.")
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
