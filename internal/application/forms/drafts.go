package forms

import (
	"strconv"
	"strings"

	"easylease-admin/internal/domain"
)

// FieldSource returns the submitted value of a form input ("" when absent).
type FieldSource func(name string) string

// ParseList splits comma separated text, trims every item and drops empty ones.
func ParseList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// JoinList is the inverse used to fill the text inputs.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return append([]string(nil), items...)
}

func number(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return f
}

// NewListingDraft seeds a listing form, from l in edit mode or defaults when l is nil.
func NewListingDraft(l *domain.Listing) Draft[domain.ListingInput] {
	in := domain.ListingInput{
		RoomType:         domain.RoomSingle,
		MinTermWeeks:     1,
		PreferredTenants: []string{},
		HouseFeatures:    []string{},
		Rules:            []string{},
		Images:           []string{},
		Status:           domain.ListingDraft,
		Locale:           domain.LocaleES,
	}
	if l == nil {
		return Draft[domain.ListingInput]{Input: in}
	}

	in.Title = l.Title
	in.Slug = l.Slug
	in.PricePerWeek = l.PricePerWeek
	in.Bond = l.Bond
	in.BillsIncluded = l.BillsIncluded
	in.Address = l.Address
	in.Suburb = l.Suburb
	if l.RoomType != "" {
		in.RoomType = l.RoomType
	}
	// The backend may send a full timestamp; the date input only takes the day.
	in.AvailableFrom, _, _ = strings.Cut(l.AvailableFrom, "T")
	if l.MinTermWeeks > 0 {
		in.MinTermWeeks = l.MinTermWeeks
	}
	in.PreferredTenants = orEmpty(l.PreferredTenants)
	in.HouseFeatures = orEmpty(l.HouseFeatures)
	in.Rules = orEmpty(l.Rules)
	in.Images = orEmpty(l.Images)
	if l.Status != "" {
		in.Status = l.Status
	}
	if l.Locale != "" {
		in.Locale = l.Locale
	}
	return Draft[domain.ListingInput]{ID: l.ID, Input: in}
}

// ApplyListing copies the submitted field values into the draft. Images are
// edited through their own actions and are left untouched.
func ApplyListing(d *Draft[domain.ListingInput], get FieldSource) {
	in := &d.Input
	in.Title = get("title")
	in.PricePerWeek = number(get("price_per_week"))
	in.Bond = number(get("bond"))
	in.BillsIncluded = checked(get("bills_included"))
	in.Address = get("address")
	in.Suburb = get("suburb")
	in.RoomType = domain.RoomType(get("room_type"))
	in.AvailableFrom = get("available_from")
	in.MinTermWeeks = int(number(get("min_term_weeks")))
	in.PreferredTenants = ParseList(get("preferred_tenants"))
	in.HouseFeatures = ParseList(get("house_features"))
	in.Rules = ParseList(get("rules"))
	in.Status = domain.ListingStatus(get("status"))
	in.Locale = domain.Locale(get("locale"))
}

func checked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func NewLeadDraft(l *domain.Lead) Draft[domain.LeadInput] {
	if l == nil {
		return Draft[domain.LeadInput]{Input: domain.LeadInput{Status: domain.LeadNew}}
	}
	in := domain.LeadInput{
		Name:    l.Name,
		Email:   l.Email,
		Phone:   l.Phone,
		Message: l.Message,
		Status:  l.Status,
	}
	if in.Status == "" {
		in.Status = domain.LeadNew
	}
	return Draft[domain.LeadInput]{ID: l.ID, Input: in}
}

func ApplyLead(d *Draft[domain.LeadInput], get FieldSource) {
	d.Input = domain.LeadInput{
		Name:    get("name"),
		Email:   get("email"),
		Phone:   get("phone"),
		Message: get("message"),
		Status:  domain.LeadStatus(get("status")),
	}
}

func NewPartnerDraft(p *domain.Partner) Draft[domain.PartnerInput] {
	if p == nil {
		return Draft[domain.PartnerInput]{Input: domain.PartnerInput{Status: domain.PartnerPending}}
	}
	in := domain.PartnerInput{
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		CompanyName: p.CompanyName,
		Status:      p.Status,
	}
	if in.Status == "" {
		in.Status = domain.PartnerPending
	}
	return Draft[domain.PartnerInput]{ID: p.ID, Input: in}
}

func ApplyPartner(d *Draft[domain.PartnerInput], get FieldSource) {
	d.Input = domain.PartnerInput{
		Name:        get("name"),
		Email:       get("email"),
		Phone:       get("phone"),
		CompanyName: get("company_name"),
		Status:      domain.PartnerStatus(get("status")),
	}
}
