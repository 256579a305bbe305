package partners

import (
	"easylease-admin/internal/application/forms"
	"easylease-admin/internal/application/loaders"
	"easylease-admin/internal/application/tables"
	"easylease-admin/internal/domain"
	"easylease-admin/internal/interfaces/handlers/pages"
	"easylease-admin/internal/interfaces/views"
)

type Handlers struct {
	*pages.Resource[domain.Partner, domain.PartnerInput]
}

func New(loader *loaders.Loader, table *tables.Controller[domain.Partner], form *forms.Form[domain.PartnerInput]) *Handlers {
	return &Handlers{&pages.Resource[domain.Partner, domain.PartnerInput]{
		Name:     "partners",
		Title:    "Partners",
		NotFound: "Partner no encontrado",
		Table:    table,
		Form:     form,
		LoadList: loader.Partners,
		LoadOne:  loader.Partner,
		Stats:    loaders.PartnerStats,
		NewDraft: forms.NewPartnerDraft,
		Apply:    forms.ApplyPartner,
		FormData: func(d forms.Draft[domain.PartnerInput], action string) interface{} {
			return views.FormData[domain.PartnerInput]{Draft: d, Action: action, Back: "/partners"}
		},
	}}
}
