package usecase

import "errors"

// Refresh failures map to 401 with their own messages.
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
