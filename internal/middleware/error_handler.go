package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"easylease-admin/internal/interfaces/views"
	"easylease-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const errorLogSize = 50

// ErrorEntry is one element of the Redis error log shown on the status page.
type ErrorEntry struct {
	Time    time.Time `json:"time"`
	Method  string    `json:"method"`
	Path    string    `json:"path"`
	Status  int       `json:"status"`
	Message string    `json:"message"`
	TraceID string    `json:"traceId"`
}

// ErrorHandler is the global error handler. Pages get the dashboard error page;
// JSON callers and the status routes get the error envelope. Server errors are
// logged and pushed to the Redis error log when rdb is set.
func ErrorHandler(rdb *redis.Client) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		logger := Logger(c)
		if code >= fiber.StatusInternalServerError {
			logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Int("status", code).Msg("Unhandled error")
			recordError(rdb, ErrorEntry{
				Time:    time.Now(),
				Method:  c.Method(),
				Path:    c.OriginalURL(),
				Status:  code,
				Message: err.Error(),
				TraceID: GetTraceID(c),
			})
		} else {
			logger.Debug().Err(err).Str("path", c.Path()).Int("status", code).Msg("Request rejected")
		}

		if response.WantsJSON(c) || strings.HasPrefix(c.Path(), "/health") {
			return response.Error(c, message, code)
		}

		text := message
		if code == fiber.StatusNotFound {
			text = "La página que buscas no existe."
		} else if code >= fiber.StatusInternalServerError {
			text = "Se produjo un error inesperado. Inténtalo de nuevo."
		}
		page := views.Page{
			Title: "Error",
			Path:  c.Path(),
			Data:  views.MissingData{Status: code, Message: text, Back: "/"},
		}
		if rerr := c.Status(code).Render("missing", page); rerr != nil {
			return c.Status(code).SendString(message)
		}
		return nil
	}
}

func recordError(rdb *redis.Client, entry ErrorEntry) {
	if rdb == nil {
		return
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	ctx := context.Background()
	_, _ = rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, KeyErrorLog, b)
		p.LTrim(ctx, KeyErrorLog, 0, errorLogSize-1)
		return nil
	})
}
