package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the body returned for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}

// SendJSON sends a success payload using the provided HTTP status code.
func SendJSON(c *fiber.Ctx, status int, payload interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(payload)
}
