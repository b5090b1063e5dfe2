package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cityworks/complaint-service/internal/domain"
	apperrors "github.com/cityworks/complaint-service/pkg/util/errorutil"
)

// RequireRole ensures the signed-in user holds one of the allowed roles.
// With no roles given any signed-in user passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Session == nil {
			return apperrors.NewUnauthorized("sign in required")
		}
		role, signedIn := principal.Session.Role()
		if !signedIn {
			return apperrors.NewUnauthorized("sign in required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller is an administrator.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
