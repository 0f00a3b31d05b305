package middleware

import (
	"errors"
	"log"
	"strings"

	"giftmart/internal/apperrors"
	"giftmart/internal/models"
	"giftmart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that checks for a valid identity
// provider token and stores the verified claims in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("name", claims.Name)

		return c.Next()
	}
}

// AdminRequired gates privileged operations. The role is read from the
// synced user record, never from a client-supplied claim or email, so a
// caller cannot elevate itself. Must run after AuthRequired.
func AdminRequired(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		externalID, _ := c.Locals("user_id").(string)
		if externalID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication is required",
			})
		}

		user, err := userService.GetByExternalID(externalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"message": "Admin access required",
				})
			}
			log.Printf("Error loading user %s for admin check: %v", externalID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not verify permissions",
			})
		}

		if user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}

		return c.Next()
	}
}
