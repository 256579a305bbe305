package forms

import (
	"context"

	"easylease-admin/internal/domain"
	"easylease-admin/internal/infrastructure/session"
	"easylease-admin/internal/pkg/validation"
)

type LeadAPI interface {
	CreateLead(ctx context.Context, in domain.LeadInput) (domain.Lead, error)
	UpdateLead(ctx context.Context, id string, in domain.LeadInput) (domain.Lead, error)
}

type PartnerAPI interface {
	CreatePartner(ctx context.Context, in domain.PartnerInput) (domain.Partner, error)
	UpdatePartner(ctx context.Context, id string, in domain.PartnerInput) (domain.Partner, error)
}

// NewListings builds the listing form. Uploaded images go to folder.
func NewListings(api ListingAPI, store session.Store, v *validation.Validator, folder string) *Listings {
	if folder == "" {
		folder = "listings"
	}
	return &Listings{
		Form: &Form[domain.ListingInput]{
			name:       "listings",
			listPath:   "/listings",
			saveFailed: "Error al guardar la listing",
			store:      store,
			validate:   v,
			create: func(ctx context.Context, in domain.ListingInput) error {
				_, err := api.CreateListing(ctx, in)
				return err
			},
			update: func(ctx context.Context, id string, in domain.ListingInput) error {
				_, err := api.UpdateListing(ctx, id, in)
				return err
			},
			prepare: func(in *domain.ListingInput) {
				in.Slug = domain.Slugify(in.Title)
			},
		},
		api:    api,
		folder: folder,
	}
}

func NewLeads(api LeadAPI, store session.Store, v *validation.Validator) *Form[domain.LeadInput] {
	return &Form[domain.LeadInput]{
		name:       "leads",
		listPath:   "/leads",
		saveFailed: "Error al guardar el lead",
		store:      store,
		validate:   v,
		create: func(ctx context.Context, in domain.LeadInput) error {
			_, err := api.CreateLead(ctx, in)
			return err
		},
		update: func(ctx context.Context, id string, in domain.LeadInput) error {
			_, err := api.UpdateLead(ctx, id, in)
			return err
		},
	}
}

func NewPartners(api PartnerAPI, store session.Store, v *validation.Validator) *Form[domain.PartnerInput] {
	return &Form[domain.PartnerInput]{
		name:       "partners",
		listPath:   "/partners",
		saveFailed: "Error al guardar el partner",
		store:      store,
		validate:   v,
		create: func(ctx context.Context, in domain.PartnerInput) error {
			_, err := api.CreatePartner(ctx, in)
			return err
		},
		update: func(ctx context.Context, id string, in domain.PartnerInput) error {
			_, err := api.UpdatePartner(ctx, id, in)
			return err
		},
	}
}
