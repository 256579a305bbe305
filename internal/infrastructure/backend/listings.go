package backend

import (
	"context"
	"errors"
	"net/http"

	"easylease-admin/internal/domain"
)

var errEmptyID = errors.New("backend: empty id")

// ListListings GET /listings/admin/all returns every listing, including unpublished ones.
// Recognized params: status, limit.
func (c *Client) ListListings(ctx context.Context, params Params) ([]domain.Listing, error) {
	return fetch[[]domain.Listing](ctx, c, request{
		method: http.MethodGet,
		route:  "/listings/admin/all",
		path:   "/listings/admin/all",
		query:  params,
	})
}

// GetListing GET /listings/admin/:id
func (c *Client) GetListing(ctx context.Context, id string) (domain.Listing, error) {
	if id == "" {
		return domain.Listing{}, errEmptyID
	}
	return fetch[domain.Listing](ctx, c, request{
		method: http.MethodGet,
		route:  "/listings/admin/:id",
		path:   "/listings/admin/" + escape(id),
	})
}

// GetListingBySlug GET /listings/slug/:slug (public route).
func (c *Client) GetListingBySlug(ctx context.Context, slug string) (domain.Listing, error) {
	if slug == "" {
		return domain.Listing{}, errEmptyID
	}
	return fetch[domain.Listing](ctx, c, request{
		method: http.MethodGet,
		route:  "/listings/slug/:slug",
		path:   "/listings/slug/" + escape(slug),
	})
}

// ListPublishedListings GET /listings, the public collection.
// Recognized params: suburb, room_type, min_price, max_price, limit.
func (c *Client) ListPublishedListings(ctx context.Context, params Params) ([]domain.Listing, error) {
	return fetch[[]domain.Listing](ctx, c, request{
		method: http.MethodGet,
		route:  "/listings",
		path:   "/listings",
		query:  params,
	})
}

// CreateListing POST /listings
func (c *Client) CreateListing(ctx context.Context, in domain.ListingInput) (domain.Listing, error) {
	return fetch[domain.Listing](ctx, c, request{
		method: http.MethodPost,
		route:  "/listings",
		path:   "/listings",
		json:   in,
	})
}

// UpdateListing PUT /listings/:id with the full editable body.
func (c *Client) UpdateListing(ctx context.Context, id string, in domain.ListingInput) (domain.Listing, error) {
	return c.putListing(ctx, id, in)
}

// UpdateListingStatus PUT /listings/:id with a {status} body. Listings have no
// dedicated status route.
func (c *Client) UpdateListingStatus(ctx context.Context, id string, status domain.ListingStatus) (domain.Listing, error) {
	return c.putListing(ctx, id, domain.StatusPatch{Status: string(status)})
}

func (c *Client) putListing(ctx context.Context, id string, body interface{}) (domain.Listing, error) {
	if id == "" {
		return domain.Listing{}, errEmptyID
	}
	return fetch[domain.Listing](ctx, c, request{
		method: http.MethodPut,
		route:  "/listings/:id",
		path:   "/listings/" + escape(id),
		json:   body,
	})
}

// DeleteListing DELETE /listings/:id
func (c *Client) DeleteListing(ctx context.Context, id string) (domain.Message, error) {
	if id == "" {
		return domain.Message{}, errEmptyID
	}
	return fetch[domain.Message](ctx, c, request{
		method: http.MethodDelete,
		route:  "/listings/:id",
		path:   "/listings/" + escape(id),
	})
}
