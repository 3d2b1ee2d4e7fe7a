// Package response writes the uniform JSON envelope every endpoint returns.
package response

import "github.com/gofiber/fiber/v3"

type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	MessageBadRequest          = "bad request"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

func Success(c fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{Status: status, Message: message, Data: data})
}

func Error(c fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{Status: status, Message: message, Data: data})
}
