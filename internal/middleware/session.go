package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionConfig controls the dashboard session cookie.
type SessionConfig struct {
	IsProduction bool
}

const (
	SessionCookieName = "easylease.sid"
	sessionLocal      = "session_id"
	sessionMaxAge     = 24 * time.Hour
)

// Session makes sure every request carries a session id. The id only keys the
// per-visitor view state (tables, form drafts); it holds no identity.
func Session(cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(SessionCookieName)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.New().String()
			c.Cookie(SessionCookie(cfg, sid))
		}
		c.Locals(sessionLocal, sid)
		return c.Next()
	}
}

// GetSessionID returns the current session ID from context.
func GetSessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionLocal).(string)
	return sid
}

// SessionCookie returns the cookie that carries sid.
func SessionCookie(cfg SessionConfig, sid string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
