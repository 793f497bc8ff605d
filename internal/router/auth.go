package router

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the session cookie and stores the principal id
// and claims in locals. Every record and profile route sits behind it; the
// per-operation access guard compares the principal to the path afterwards.
func AuthMiddleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies("token")
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		id, ok := claims["id"].(string)
		if !ok || strings.TrimSpace(id) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		c.Locals("userID", id)
		c.Locals("claims", claims)
		return c.Next()
	}
}
