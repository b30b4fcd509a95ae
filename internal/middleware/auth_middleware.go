package middleware

import (
	"strings"

	"github.com/Rafael22222222/smartbiz.lux/internal/repository"
	"github.com/Rafael22222222/smartbiz.lux/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the JWT token and sets the owner identity in the
// request context. Every store query downstream is scoped to this owner.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}

		c.Locals("owner_id", user.ID)
		c.Locals("owner_email", user.Email)
		c.Locals("owner_name", user.FullName)

		return c.Next()
	}
}
