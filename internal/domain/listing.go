package domain

import (
	"regexp"
	"strings"
	"time"
)

// ListingStatus is the publication state of a listing.
type ListingStatus string

const (
	ListingDraft     ListingStatus = "draft"
	ListingPublished ListingStatus = "published"
	ListingReserved  ListingStatus = "reserved"
	ListingRented    ListingStatus = "rented"
)

// ListingStatuses is the full set in display order.
var ListingStatuses = []ListingStatus{ListingDraft, ListingPublished, ListingReserved, ListingRented}

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingDraft, ListingPublished, ListingReserved, ListingRented:
		return true
	}
	return false
}

// Label is the Spanish label shown in the dashboard. Unknown values are shown as-is.
func (s ListingStatus) Label() string {
	switch s {
	case ListingDraft:
		return "Borrador"
	case ListingPublished:
		return "Publicado"
	case ListingReserved:
		return "Reservado"
	case ListingRented:
		return "Alquilado"
	}
	return string(s)
}

// Toggled returns the status the row toggle moves to: published <-> draft.
// Any status other than published toggles to published.
func (s ListingStatus) Toggled() ListingStatus {
	if s == ListingPublished {
		return ListingDraft
	}
	return ListingPublished
}

// RoomType of a listing.
type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomMaster RoomType = "master"
)

var RoomTypes = []RoomType{RoomSingle, RoomDouble, RoomMaster}

func (r RoomType) Label() string {
	switch r {
	case RoomSingle:
		return "Individual"
	case RoomDouble:
		return "Doble"
	case RoomMaster:
		return "Principal"
	}
	return string(r)
}

// Locale of the listing copy.
type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
)

var Locales = []Locale{LocaleES, LocaleEN}

func (l Locale) Label() string {
	switch l {
	case LocaleES:
		return "Español"
	case LocaleEN:
		return "English"
	}
	return string(l)
}

// GeoPoint is a GeoJSON point as stored by the backend ([lng, lat]).
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Listing is a rentable room as returned by the admin listing routes.
type Listing struct {
	ID               string        `json:"_id"`
	Title            string        `json:"title"`
	Slug             string        `json:"slug"`
	PricePerWeek     float64       `json:"price_per_week"`
	Bond             float64       `json:"bond"`
	BillsIncluded    bool          `json:"bills_included"`
	Address          string        `json:"address"`
	Suburb           string        `json:"suburb,omitempty"`
	Location         *GeoPoint     `json:"location,omitempty"`
	RoomType         RoomType      `json:"room_type"`
	AvailableFrom    string        `json:"available_from,omitempty"`
	MinTermWeeks     int           `json:"min_term_weeks"`
	PreferredTenants []string      `json:"preferred_tenants"`
	HouseFeatures    []string      `json:"house_features"`
	Rules            []string      `json:"rules"`
	Images           []string      `json:"images"`
	OwnerPartnerID   string        `json:"owner_partner_id,omitempty"`
	Status           ListingStatus `json:"status"`
	Locale           Locale        `json:"locale"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

func (l Listing) GetID() string     { return l.ID }
func (l Listing) GetStatus() string { return string(l.Status) }

// WithStatus returns a copy of l with only the status replaced.
func (l Listing) WithStatus(status string) Listing {
	l.Status = ListingStatus(status)
	return l
}

// Cover is the first image, or "" when the listing has none.
func (l Listing) Cover() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// Place is the suburb when known, otherwise the street address.
func (l Listing) Place() string {
	if l.Suburb != "" {
		return l.Suburb
	}
	return l.Address
}

// HasExtras reports whether any tag list is non-empty.
func (l Listing) HasExtras() bool {
	return len(l.HouseFeatures) > 0 || len(l.PreferredTenants) > 0 || len(l.Rules) > 0
}

// ListingInput is the editable body sent on create and update.
type ListingInput struct {
	Title            string        `json:"title" validate:"required"`
	Slug             string        `json:"slug"`
	PricePerWeek     float64       `json:"price_per_week" validate:"min=0"`
	Bond             float64       `json:"bond" validate:"min=0"`
	BillsIncluded    bool          `json:"bills_included"`
	Address          string        `json:"address" validate:"required"`
	Suburb           string        `json:"suburb"`
	RoomType         RoomType      `json:"room_type" validate:"required,oneof=single double master"`
	AvailableFrom    string        `json:"available_from" validate:"omitempty,date"`
	MinTermWeeks     int           `json:"min_term_weeks" validate:"min=1"`
	PreferredTenants []string      `json:"preferred_tenants"`
	HouseFeatures    []string      `json:"house_features"`
	Rules            []string      `json:"rules"`
	Images           []string      `json:"images"`
	Status           ListingStatus `json:"status" validate:"required,oneof=draft published reserved rented"`
	Locale           Locale        `json:"locale" validate:"required,oneof=es en"`
}

// StatusPatch is the partial body used for inline status changes.
type StatusPatch struct {
	Status string `json:"status"`
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugSeparate = regexp.MustCompile(`[\s_-]+`)
	slugEdges    = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives a listing slug from its title.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSeparate.ReplaceAllString(s, "-")
	return slugEdges.ReplaceAllString(s, "")
}
