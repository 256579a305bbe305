package backend

import (
	"context"
	"net/http"

	"easylease-admin/internal/domain"
)

// ListLeads GET /leads, optionally filtered by status.
func (c *Client) ListLeads(ctx context.Context, status string) ([]domain.Lead, error) {
	return fetch[[]domain.Lead](ctx, c, request{
		method: http.MethodGet,
		route:  "/leads",
		path:   "/leads",
		query:  Params{"status": status},
	})
}

func (c *Client) GetLead(ctx context.Context, id string) (domain.Lead, error) {
	if id == "" {
		return domain.Lead{}, errEmptyID
	}
	return fetch[domain.Lead](ctx, c, request{
		method: http.MethodGet,
		route:  "/leads/:id",
		path:   "/leads/" + escape(id),
	})
}

func (c *Client) CreateLead(ctx context.Context, in domain.LeadInput) (domain.Lead, error) {
	return fetch[domain.Lead](ctx, c, request{
		method: http.MethodPost,
		route:  "/leads",
		path:   "/leads",
		json:   in,
	})
}

func (c *Client) UpdateLead(ctx context.Context, id string, in domain.LeadInput) (domain.Lead, error) {
	if id == "" {
		return domain.Lead{}, errEmptyID
	}
	return fetch[domain.Lead](ctx, c, request{
		method: http.MethodPut,
		route:  "/leads/:id",
		path:   "/leads/" + escape(id),
		json:   in,
	})
}

// UpdateLeadStatus PATCH /leads/:id/status
func (c *Client) UpdateLeadStatus(ctx context.Context, id string, status domain.LeadStatus) (domain.Lead, error) {
	if id == "" {
		return domain.Lead{}, errEmptyID
	}
	return fetch[domain.Lead](ctx, c, request{
		method: http.MethodPatch,
		route:  "/leads/:id/status",
		path:   "/leads/" + escape(id) + "/status",
		json:   domain.StatusPatch{Status: string(status)},
	})
}

func (c *Client) DeleteLead(ctx context.Context, id string) (domain.Message, error) {
	if id == "" {
		return domain.Message{}, errEmptyID
	}
	return fetch[domain.Message](ctx, c, request{
		method: http.MethodDelete,
		route:  "/leads/:id",
		path:   "/leads/" + escape(id),
	})
}
