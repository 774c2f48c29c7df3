package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles gates a route group to the given admin roles. Must run behind
// AuthMiddleware, which fills admin_role.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("admin_role").(string)
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Access denied. Insufficient privileges.")
		}
		return c.Next()
	}
}
