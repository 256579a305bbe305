package backend

import (
	"context"
	"net/http"

	"easylease-admin/internal/domain"
)

// Health GET /health
func (c *Client) Health(ctx context.Context) (domain.Health, error) {
	return fetch[domain.Health](ctx, c, request{
		method: http.MethodGet,
		route:  "/health",
		path:   "/health",
	})
}
