package views

import (
	"easylease-admin/internal/application/forms"
	"easylease-admin/internal/application/loaders"
	"easylease-admin/internal/domain"
)

// ListData binds a list page: the session table plus the load outcome.
type ListData[T any] struct {
	Rows          []T
	Deleting      string
	Stats         []loaders.Stat
	Err           string
	Hint          string
	ConfirmDelete string
}

type (
	ListingsData = ListData[domain.Listing]
	LeadsData    = ListData[domain.Lead]
	PartnersData = ListData[domain.Partner]
)

// FormData binds a create or edit page.
type FormData[I any] struct {
	Draft  forms.Draft[I]
	Action string
	Back   string
}

// ListingFormData adds the image uploader texts and the comma list inputs.
type ListingFormData struct {
	FormData[domain.ListingInput]
	PreferredTenants   string
	HouseFeatures      string
	Rules              string
	ImageHint          string
	ConfirmImageDelete string
}

func NewListingFormData(d forms.Draft[domain.ListingInput], action string) ListingFormData {
	return ListingFormData{
		FormData:           FormData[domain.ListingInput]{Draft: d, Action: action, Back: "/listings"},
		PreferredTenants:   forms.JoinList(d.Input.PreferredTenants),
		HouseFeatures:      forms.JoinList(d.Input.HouseFeatures),
		Rules:              forms.JoinList(d.Input.Rules),
		ImageHint:          forms.ImageLimitHint,
		ConfirmImageDelete: forms.ConfirmImageDelete(),
	}
}

// MissingData binds the not-found and could-not-load pages.
type MissingData struct {
	Status  int
	Message string
	Back    string
}
