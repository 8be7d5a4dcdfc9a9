package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/avelora/storefront/pkg/auth"
)

// AuthMiddleware validates JWT tokens
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		setCustomerLocals(c, claims)
		return c.Next()
	}
}

// AdminMiddleware checks if the authenticated customer has the admin role
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := c.Locals("role")
		if role == nil || role.(string) != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}
		return c.Next()
	}
}

// OptionalAuthMiddleware validates a token if present but doesn't require
// one. Guest traffic (favorites with an X-Guest-ID header) passes through
// untouched; backend services decide what needs a session.
func OptionalAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := auth.ValidateToken(parts[1]); err == nil {
				setCustomerLocals(c, claims)
			}
		}

		return c.Next()
	}
}

func setCustomerLocals(c *fiber.Ctx, claims *auth.Claims) {
	c.Locals("customer_id", claims.CustomerID)
	c.Locals("email", claims.Email)
	c.Locals("role", claims.Role)

	// Forward identity to backend services
	c.Request().Header.Set("X-Customer-ID", fmt.Sprintf("%d", claims.CustomerID))
	c.Request().Header.Set("X-Customer-Email", claims.Email)
	c.Request().Header.Set("X-Customer-Role", claims.Role)
}
