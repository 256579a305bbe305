package domain

import "time"

// PartnerStatus is the account state of a partner.
type PartnerStatus string

const (
	PartnerActive   PartnerStatus = "active"
	PartnerInactive PartnerStatus = "inactive"
	PartnerPending  PartnerStatus = "pending"
)

var PartnerStatuses = []PartnerStatus{PartnerActive, PartnerInactive, PartnerPending}

func (s PartnerStatus) Valid() bool {
	switch s {
	case PartnerActive, PartnerInactive, PartnerPending:
		return true
	}
	return false
}

func (s PartnerStatus) Label() string {
	switch s {
	case PartnerActive:
		return "Activo"
	case PartnerInactive:
		return "Inactivo"
	case PartnerPending:
		return "Pendiente"
	}
	return string(s)
}

// Partner is a property owner or manager account.
type Partner struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	CompanyName string        `json:"company_name,omitempty"`
	Status      PartnerStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (p Partner) GetID() string     { return p.ID }
func (p Partner) GetStatus() string { return string(p.Status) }

func (p Partner) WithStatus(status string) Partner {
	p.Status = PartnerStatus(status)
	return p
}

// PartnerInput is the editable body sent on create and update.
type PartnerInput struct {
	Name        string        `json:"name" validate:"required"`
	Email       string        `json:"email" validate:"required,email"`
	Phone       string        `json:"phone"`
	CompanyName string        `json:"company_name"`
	Status      PartnerStatus `json:"status" validate:"required,oneof=active inactive pending"`
}
