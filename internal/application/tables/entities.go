package tables

import (
	"context"

	"easylease-admin/internal/domain"
	"easylease-admin/internal/infrastructure/session"
)

const statusFailed = "Error al actualizar el estado"

// ListingAPI is the part of the backend client the listings table uses.
type ListingAPI interface {
	DeleteListing(ctx context.Context, id string) (domain.Message, error)
	UpdateListingStatus(ctx context.Context, id string, status domain.ListingStatus) (domain.Listing, error)
}

type LeadAPI interface {
	DeleteLead(ctx context.Context, id string) (domain.Message, error)
	UpdateLeadStatus(ctx context.Context, id string, status domain.LeadStatus) (domain.Lead, error)
}

type PartnerAPI interface {
	DeletePartner(ctx context.Context, id string) (domain.Message, error)
	UpdatePartnerStatus(ctx context.Context, id string, status domain.PartnerStatus) (domain.Partner, error)
}

type listingMutator struct{ api ListingAPI }

func (m listingMutator) Delete(ctx context.Context, id string) error {
	_, err := m.api.DeleteListing(ctx, id)
	return err
}

func (m listingMutator) SetStatus(ctx context.Context, id, status string) (domain.Listing, error) {
	return m.api.UpdateListingStatus(ctx, id, domain.ListingStatus(status))
}

func (listingMutator) ValidStatus(s string) bool { return domain.ListingStatus(s).Valid() }

type leadMutator struct{ api LeadAPI }

func (m leadMutator) Delete(ctx context.Context, id string) error {
	_, err := m.api.DeleteLead(ctx, id)
	return err
}

func (m leadMutator) SetStatus(ctx context.Context, id, status string) (domain.Lead, error) {
	return m.api.UpdateLeadStatus(ctx, id, domain.LeadStatus(status))
}

func (leadMutator) ValidStatus(s string) bool { return domain.LeadStatus(s).Valid() }

type partnerMutator struct{ api PartnerAPI }

func (m partnerMutator) Delete(ctx context.Context, id string) error {
	_, err := m.api.DeletePartner(ctx, id)
	return err
}

func (m partnerMutator) SetStatus(ctx context.Context, id, status string) (domain.Partner, error) {
	return m.api.UpdatePartnerStatus(ctx, id, domain.PartnerStatus(status))
}

func (partnerMutator) ValidStatus(s string) bool { return domain.PartnerStatus(s).Valid() }

// Listings is the listings table. Besides delete and status change it offers the
// published/draft toggle.
type Listings struct {
	*Controller[domain.Listing]
}

func NewListings(api ListingAPI, store session.Store) *Listings {
	return &Listings{NewController[domain.Listing]("listings", listingMutator{api}, store, Messages{
		ConfirmDelete: "¿Estás seguro de que quieres eliminar esta propiedad?",
		DeleteFailed:  "Error al eliminar la propiedad",
		StatusFailed:  statusFailed,
	})}
}

// ToggleStatus flips a listing between published and draft based on its local status.
func (l *Listings) ToggleStatus(ctx context.Context, sid, id string) (Result[domain.Listing], error) {
	t, _, err := l.State(ctx, sid)
	if err != nil {
		return Result[domain.Listing]{}, err
	}
	row, ok := Find(t.Rows, id)
	if !ok {
		return Result[domain.Listing]{Table: t, Alert: statusFailed}, nil
	}
	return l.ChangeStatus(ctx, sid, id, string(row.Status.Toggled()))
}

func NewLeads(api LeadAPI, store session.Store) *Controller[domain.Lead] {
	return NewController[domain.Lead]("leads", leadMutator{api}, store, Messages{
		ConfirmDelete: "¿Estás seguro de que quieres eliminar este lead?",
		DeleteFailed:  "Error al eliminar el lead",
		StatusFailed:  statusFailed,
	})
}

func NewPartners(api PartnerAPI, store session.Store) *Controller[domain.Partner] {
	return NewController[domain.Partner]("partners", partnerMutator{api}, store, Messages{
		ConfirmDelete: "¿Estás seguro de que quieres eliminar este partner?",
		DeleteFailed:  "Error al eliminar el partner",
		StatusFailed:  statusFailed,
	})
}
