package utils

import "github.com/gofiber/fiber/v2"

// APIResponse describes the JSON envelope returned by the relay: {success:true} on
// acceptance, {error:"..."} on rejection.
type APIResponse struct {
	Success bool        `json:"success,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SendSuccess sends a 200 success payload.
func SendSuccess(c *fiber.Ctx, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, data)
}

// SendSuccessWithStatus sends a success payload using the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}

	return send(c, status, APIResponse{Success: true, Data: data})
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return send(c, status, APIResponse{Error: message})
}

func send(c *fiber.Ctx, status int, payload APIResponse) error {
	if err := c.Status(status).JSON(payload); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return nil
}
