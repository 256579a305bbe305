package middleware

import (
	"time"

	"easylease-admin/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// RouteLogger logs each request entry and exit with status, duration and trace ID,
// and counts the request in the page metrics.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		logger := Logger(c)
		start := time.Now()
		logger.Debug().Str("method", c.Method()).Str("path", c.Path()).Msg("Entering request")

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		ms := time.Since(start).Milliseconds()
		metrics.ObservePage(c.Method(), status)

		evt := logger.Info()
		if status >= fiber.StatusInternalServerError {
			evt = logger.Warn()
		}
		evt.Str("method", c.Method()).Str("path", c.Path()).Int("status", status).Int64("ms", ms).Msg("Exiting request")
		return err
	}
}
