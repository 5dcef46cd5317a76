package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/aryanpatel3011/localseva_be/internal/models"
	"github.com/aryanpatel3011/localseva_be/internal/utils"
)

func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		raw := c.Locals("user")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		token, ok := raw.(*jwt.Token)
		if !ok || token == nil {
			return fiber.ErrUnauthorized
		}

		claims, ok := token.Claims.(*utils.Claims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		role := strings.ToLower(strings.TrimSpace(claims.Role))
		if !allowedSet[role] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}

		return c.Next()
	}
}

// RequireProvider checks the provider flag on the account itself.
// Any user can flip it via profile setup, so it lives in the DB and not
// in the token.
func RequireProvider(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid := c.Locals("userId")
		if uid == nil {
			return fiber.ErrUnauthorized
		}

		var user models.User
		if err := db.First(&user, "id = ?", uid).Error; err != nil {
			return fiber.ErrUnauthorized
		}

		if !user.IsProvider {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: provider account required")
		}

		return c.Next()
	}
}
