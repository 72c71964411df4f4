package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/academic-cert-api/type/response"
	"github.com/sunthewhat/academic-cert-api/type/shared"
)

func SetPrincipal(c *fiber.Ctx, p shared.Principal) {
	c.Locals(principalKey, p)
}

// GetPrincipal returns the authenticated caller set by Jwt.
func GetPrincipal(c *fiber.Ctx) (shared.Principal, bool) {
	p, ok := c.Locals(principalKey).(shared.Principal)
	return p, ok
}

// RequireRole rejects callers whose principal has a different role.
func RequireRole(role shared.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return response.SendUnauthorized(c, "User token not found")
		}
		if p.Role != role {
			slog.Warn("RequireRole: access denied", "role", p.Role, "required", role, "path", c.Path())
			return response.SendForbidden(c, "Access denied")
		}
		return c.Next()
	}
}
