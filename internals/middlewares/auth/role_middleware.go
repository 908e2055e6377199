// internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	"kerjaku_backend/internals/constants"
)

// RequireRoles blocks the request unless the token role is in the allow set.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role == "" {
			return fiber.NewError(fiber.StatusForbidden, "No role in token")
		}
		// global admin passes everything
		if role == constants.RoleGlobalAdmin {
			return c.Next()
		}
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorManager(c.Path()))
		}
		return c.Next()
	}
}

// RequireAdmin restricts the group to admin-level roles.
func RequireAdmin() fiber.Handler {
	return RequireRoles(constants.RoleAdmin, constants.RoleClientAdmin, constants.RoleGlobalAdmin)
}

// RequireManagerial allows team leads and above.
func RequireManagerial() fiber.Handler {
	return RequireRoles(
		constants.RoleTeamLead,
		constants.RoleManager,
		constants.RoleAdmin,
		constants.RoleClientAdmin,
		constants.RoleGlobalAdmin,
	)
}
