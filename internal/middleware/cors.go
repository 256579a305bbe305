package middleware

import (
	"strings"

	"easylease-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig lists the origins allowed to read the status endpoints.
type CORSConfig struct {
	AllowedOrigins []string
}

func (cfg CORSConfig) allows(origin string) bool {
	origin = strings.TrimRight(strings.ToLower(origin), "/")
	for _, o := range cfg.AllowedOrigins {
		if strings.TrimRight(strings.ToLower(o), "/") == origin {
			return true
		}
	}
	return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
}

// CORS lets the public site (and local development origins) poll the read-only
// status routes. Requests without an Origin pass through untouched.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		if !cfg.allows(origin) {
			return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden)
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")
		c.Set(fiber.HeaderVary, fiber.HeaderOrigin)
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
