package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// extractUserID pulls the authenticated subject from request locals set by
// the JWT middleware.
func extractUserID(c *fiber.Ctx) (uint, error) {
	value := c.Locals("user_id")
	if value == nil {
		return 0, fmt.Errorf("missing user context")
	}

	switch v := value.(type) {
	case uint:
		return v, nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("invalid user context")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid user context")
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("invalid user context")
	}
}

// parseParamUint parses a positive integer route parameter.
func parseParamUint(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}

	return uint(parsed), nil
}
