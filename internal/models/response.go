package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform API response body.
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// Respond writes a success envelope with the given status code.
func Respond(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(Envelope{
		Status:  "success",
		Data:    data,
		Message: message,
	})
}

// RespondWithError writes an error envelope. The status code is derived from
// the AppError code; messages from unrecognized errors are replaced so raw
// store errors never reach the client.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := StatusForError(err)
	message := "Internal server error"
	var appErr *AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	return c.Status(status).JSON(Envelope{
		Status:  "error",
		Data:    nil,
		Message: message,
	})
}
