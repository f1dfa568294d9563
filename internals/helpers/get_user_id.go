package helper

import (
	"github.com/gofiber/fiber/v2"
)

// GetUserIDFromLocals reads the user id that the auth middleware stored in
// Locals after verifying the JWT.
func GetUserIDFromLocals(c *fiber.Ctx) (uint, error) {
	switch v := c.Locals("user_id").(type) {
	case uint:
		if v > 0 {
			return v, nil
		}
	case float64: // claims decoded through JSON land here
		if v > 0 {
			return uint(v), nil
		}
	case int64:
		if v > 0 {
			return uint(v), nil
		}
	}
	return 0, fiber.NewError(fiber.StatusUnauthorized, "Missing user in token")
}
