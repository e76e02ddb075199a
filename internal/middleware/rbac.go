package middleware

import (
	"github.com/gofiber/fiber/v2"

	"wedding-liaison/internal/domain"
)

// RequireRole enforces an exact role match. Roles are flat: an admin session
// does not satisfy a vendor-only route, matching the session manager's
// IsAuthenticated contract.
func RequireRole(requiredRole domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if user.Role != requiredRole {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func RequireAnyRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return Forbidden("Insufficient permissions for this operation")
	}
}

func IsAdmin(c *fiber.Ctx) bool {
	user := GetCurrentUser(c)
	return user != nil && user.Role == domain.RoleAdmin
}

// CanAccessUserScope reports whether the current session may read resources
// owned by userID: the owner or an admin.
func CanAccessUserScope(c *fiber.Ctx, userID string) bool {
	user := GetCurrentUser(c)
	if user == nil {
		return false
	}
	return user.ID == userID || user.Role == domain.RoleAdmin
}

// CanAccessVendorScope reports whether the current session may read resources
// scoped to vendorID: the vendor itself or an admin. Both sides are
// normalized before comparison.
func CanAccessVendorScope(c *fiber.Ctx, vendorID string) bool {
	user := GetCurrentUser(c)
	if user == nil {
		return false
	}
	if user.Role == domain.RoleAdmin {
		return true
	}
	return user.Role == domain.RoleVendor &&
		domain.NormalizeVendorID(user.ID) == domain.NormalizeVendorID(vendorID)
}
