// Package response writes the {status, message, data} envelope returned by
// every endpoint.
package response

import "github.com/gofiber/fiber/v3"

type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const MessageServerError = "Internal server error"

var defaultMessages = map[int]string{
	fiber.StatusOK:                  "OK",
	fiber.StatusCreated:             "Created",
	fiber.StatusBadRequest:          "Bad request",
	fiber.StatusUnauthorized:        "Unauthorized",
	fiber.StatusNotFound:            "Not found",
	fiber.StatusConflict:            "Already exists",
	fiber.StatusInternalServerError: MessageServerError,
	fiber.StatusServiceUnavailable:  "Service unavailable",
}

// DefaultMessage is the text used when a handler supplies none.
func DefaultMessage(status int) string {
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	if status >= fiber.StatusInternalServerError {
		return MessageServerError
	}
	return "Request failed"
}

// Send writes the envelope. Out-of-range statuses become 500.
func Send(c fiber.Ctx, status int, message string, data any) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = DefaultMessage(status)
	}
	return c.Status(status).JSON(Envelope{Status: status, Message: message, Data: data})
}

func OK(c fiber.Ctx, data any) error {
	return Send(c, fiber.StatusOK, "", data)
}

func Created(c fiber.Ctx, message string, data any) error {
	return Send(c, fiber.StatusCreated, message, data)
}
