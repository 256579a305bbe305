package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// LeadStatus is the pipeline stage of a lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadConverted LeadStatus = "converted"
	LeadDiscarded LeadStatus = "discarded"
)

var LeadStatuses = []LeadStatus{LeadNew, LeadContacted, LeadConverted, LeadDiscarded}

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadConverted, LeadDiscarded:
		return true
	}
	return false
}

func (s LeadStatus) Label() string {
	switch s {
	case LeadNew:
		return "Nuevo"
	case LeadContacted:
		return "Contactado"
	case LeadConverted:
		return "Convertido"
	case LeadDiscarded:
		return "Descartado"
	}
	return string(s)
}

// ListingRef is a lead's reference to a listing. The backend sends either a bare
// id string or a populated {_id,title,slug} object; both decode into this type.
type ListingRef struct {
	ID       string
	Title    string
	Slug     string
	Expanded bool
}

type listingRefObject struct {
	ID    string `json:"_id"`
	Title string `json:"title,omitempty"`
	Slug  string `json:"slug,omitempty"`
}

// deletedListingLabel is shown when the referenced listing was not populated.
const deletedListingLabel = "Listing eliminado"

func (r *ListingRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ListingRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = ListingRef{ID: id}
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var obj listingRefObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = ListingRef{ID: obj.ID, Title: obj.Title, Slug: obj.Slug, Expanded: true}
		return nil
	}
	return fmt.Errorf("listing_id: unsupported JSON value %s", data)
}

func (r ListingRef) MarshalJSON() ([]byte, error) {
	if r.Expanded {
		return json.Marshal(listingRefObject{ID: r.ID, Title: r.Title, Slug: r.Slug})
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// IsZero reports whether the lead carries no listing reference at all.
func (r ListingRef) IsZero() bool {
	return r.ID == "" && !r.Expanded
}

// Label is the listing title, or the deleted-listing label when the reference
// was not expanded or has no title.
func (r ListingRef) Label() string {
	if r.Expanded && r.Title != "" {
		return r.Title
	}
	return deletedListingLabel
}

// Linkable reports whether the referenced listing can be linked to.
func (r ListingRef) Linkable() bool {
	return r.Expanded && r.ID != ""
}

// Lead is a prospective tenant's contact submission.
type Lead struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Message   string     `json:"message,omitempty"`
	ListingID ListingRef `json:"listing_id"`
	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (l Lead) GetID() string     { return l.ID }
func (l Lead) GetStatus() string { return string(l.Status) }

func (l Lead) WithStatus(status string) Lead {
	l.Status = LeadStatus(status)
	return l
}

// LeadInput is the editable body sent on create and update.
type LeadInput struct {
	Name    string     `json:"name" validate:"required"`
	Email   string     `json:"email" validate:"required,email"`
	Phone   string     `json:"phone"`
	Message string     `json:"message"`
	Status  LeadStatus `json:"status" validate:"required,oneof=new contacted converted discarded"`
}
