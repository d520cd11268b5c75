package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/directory-admin/pkg/util/errorutil"
)

// RequireAdmin ensures the principal carries the administrator role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != RoleAdmin {
			return apperrors.NewForbidden("administrator role required")
		}
		return c.Next()
	}
}
