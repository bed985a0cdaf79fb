package middleware

import (
	"strings"

	"civicfix/internal/core/domain"
	"civicfix/internal/core/services"
	"civicfix/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// principalKey is the locals key carrying the resolved principal
const principalKey = "principal"

// AuthMiddleware resolves the bearer token into a principal and stores it
// in the request context. Missing, malformed, expired and tampered tokens
// are all rejected the same way.
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		principal, err := authService.ResolveToken(accessToken)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// AdminOnly gates a route group on the admin role
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := c.Locals(principalKey).(domain.Principal)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if principal.Role() != domain.RoleAdmin {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// Principal retrieves the resolved principal from the request context
func Principal(c *fiber.Ctx) (domain.Principal, bool) {
	principal, ok := c.Locals(principalKey).(domain.Principal)
	return principal, ok
}
