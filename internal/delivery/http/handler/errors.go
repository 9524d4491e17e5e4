package handler

import (
	"errors"
	"strconv"
	"strings"

	"groupie/internal/delivery/http/middleware"
	"groupie/internal/domain"
	"groupie/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// mapError turns a use case error into an AppError with the matching status.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	msg := domain.PublicMessage(err)
	switch {
	case errors.Is(err, domain.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, orDefault(msg, "Bad request"), nil, err)
	case errors.Is(err, domain.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, orDefault(msg, "Not found"), nil, err)
	case errors.Is(err, domain.ErrDuplicateEmail):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, domain.ErrAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, orDefault(msg, "Already exists"), nil, err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, domain.ErrDeleteFailed):
		return middleware.NewAppError(fiber.StatusNotFound, "Delete failed: record not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageServerError, nil, err)
	}
}

func orDefault(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}

func badRequest(msg string, cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, msg, nil, cause)
}

// paramID parses a positive integer route parameter.
func paramID(c fiber.Ctx, name string) (int64, error) {
	return parseParamID(c, name, 1)
}

// lookupParamID also accepts 0, the id of the Unmatched match status.
func lookupParamID(c fiber.Ctx, name string) (int64, error) {
	return parseParamID(c, name, 0)
}

func parseParamID(c fiber.Ctx, name string, floor int64) (int64, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < floor {
		return 0, badRequest("Invalid "+strings.ReplaceAll(name, "_", " "), err)
	}
	return id, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
