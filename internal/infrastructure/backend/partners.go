package backend

import (
	"context"
	"net/http"

	"easylease-admin/internal/domain"
)

// ListPartners GET /partners, optionally filtered by status.
func (c *Client) ListPartners(ctx context.Context, status string) ([]domain.Partner, error) {
	return fetch[[]domain.Partner](ctx, c, request{
		method: http.MethodGet,
		route:  "/partners",
		path:   "/partners",
		query:  Params{"status": status},
	})
}

func (c *Client) GetPartner(ctx context.Context, id string) (domain.Partner, error) {
	if id == "" {
		return domain.Partner{}, errEmptyID
	}
	return fetch[domain.Partner](ctx, c, request{
		method: http.MethodGet,
		route:  "/partners/:id",
		path:   "/partners/" + escape(id),
	})
}

func (c *Client) CreatePartner(ctx context.Context, in domain.PartnerInput) (domain.Partner, error) {
	return fetch[domain.Partner](ctx, c, request{
		method: http.MethodPost,
		route:  "/partners",
		path:   "/partners",
		json:   in,
	})
}

func (c *Client) UpdatePartner(ctx context.Context, id string, in domain.PartnerInput) (domain.Partner, error) {
	if id == "" {
		return domain.Partner{}, errEmptyID
	}
	return fetch[domain.Partner](ctx, c, request{
		method: http.MethodPut,
		route:  "/partners/:id",
		path:   "/partners/" + escape(id),
		json:   in,
	})
}

// UpdatePartnerStatus PATCH /partners/:id/status
func (c *Client) UpdatePartnerStatus(ctx context.Context, id string, status domain.PartnerStatus) (domain.Partner, error) {
	if id == "" {
		return domain.Partner{}, errEmptyID
	}
	return fetch[domain.Partner](ctx, c, request{
		method: http.MethodPatch,
		route:  "/partners/:id/status",
		path:   "/partners/" + escape(id) + "/status",
		json:   domain.StatusPatch{Status: string(status)},
	})
}

func (c *Client) DeletePartner(ctx context.Context, id string) (domain.Message, error) {
	if id == "" {
		return domain.Message{}, errEmptyID
	}
	return fetch[domain.Message](ctx, c, request{
		method: http.MethodDelete,
		route:  "/partners/:id",
		path:   "/partners/" + escape(id),
	})
}
