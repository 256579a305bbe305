package leads

import (
	"easylease-admin/internal/application/forms"
	"easylease-admin/internal/application/loaders"
	"easylease-admin/internal/application/tables"
	"easylease-admin/internal/domain"
	"easylease-admin/internal/interfaces/handlers/pages"
	"easylease-admin/internal/interfaces/views"
)

// Handlers serves /leads. Status changes use the full lead status set.
type Handlers struct {
	*pages.Resource[domain.Lead, domain.LeadInput]
}

func New(loader *loaders.Loader, table *tables.Controller[domain.Lead], form *forms.Form[domain.LeadInput]) *Handlers {
	return &Handlers{&pages.Resource[domain.Lead, domain.LeadInput]{
		Name:     "leads",
		Title:    "Leads",
		NotFound: "Lead no encontrado",
		Table:    table,
		Form:     form,
		LoadList: loader.Leads,
		LoadOne:  loader.Lead,
		Stats:    loaders.LeadStats,
		NewDraft: forms.NewLeadDraft,
		Apply:    forms.ApplyLead,
		FormData: func(d forms.Draft[domain.LeadInput], action string) interface{} {
			return views.FormData[domain.LeadInput]{Draft: d, Action: action, Back: "/leads"}
		},
	}}
}
