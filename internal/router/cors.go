package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware allows the configured frontend origin. Credentials must be
// on for the session cookie, so a wildcard origin is not an option here.
func CorsMiddleware(origin string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
	})
}
