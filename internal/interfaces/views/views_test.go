package views

import (
	"bytes"
	"testing"
	"time"

	"easylease-admin/internal/application/forms"
	"easylease-admin/internal/application/loaders"
	"easylease-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, page string, p Page) string {
	t.Helper()
	e := NewEngine("https://easylease.example")
	require.NoError(t, e.Load())
	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, page, p))
	return buf.String()
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "250,00 €", Currency(250))
	assert.Equal(t, "12.500,50 €", Currency(12500.5))
	assert.Equal(t, "0,00 €", Currency(0))
}

func TestDates(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)
	assert.Equal(t, "5/3/2024", ShortDate(ts))
	assert.Equal(t, "5 de marzo de 2024", LongDate(ts))
	assert.Equal(t, "5 de marzo de 2024, 09:07", LongDateTime(ts))
	assert.Equal(t, "-", ShortDate(time.Time{}))
	assert.Equal(t, "1 de mayo de 2024", DayString("2024-05-01T00:00:00.000Z"))
	assert.Equal(t, "soon", DayString("soon"))
}

func TestTone(t *testing.T) {
	assert.Equal(t, "green", Tone("published"))
	assert.Equal(t, "yellow", Tone("pending"))
	assert.Equal(t, "red", Tone("discarded"))
	assert.Equal(t, "gray", Tone("whatever"))
}

func TestActiveNav(t *testing.T) {
	p := Page{Path: "/listings/abc/edit"}
	assert.True(t, p.Active("/listings"))
	assert.False(t, p.Active("/"))
	assert.False(t, p.Active("/leads"))
	assert.True(t, Page{Path: "/"}.Active("/"))
}

func TestEveryPageParses(t *testing.T) {
	e := NewEngine("")
	require.NoError(t, e.Load())
	for _, name := range []string{
		"dashboard", "missing",
		"listings/index", "listings/form", "listings/view",
		"leads/index", "leads/form", "leads/view",
		"partners/index", "partners/form", "partners/view",
	} {
		_, ok := e.pages[name]
		assert.True(t, ok, name)
	}
}

func TestUnknownPage(t *testing.T) {
	e := NewEngine("")
	var buf bytes.Buffer
	assert.Error(t, e.Render(&buf, "nope", Page{}))
}

func TestLayout(t *testing.T) {
	html := render(t, "dashboard", Page{Title: "Dashboard", Path: "/", Alert: "Algo falló", Data: loaders.NewDashboard(nil, nil, nil)})
	assert.Contains(t, html, "🏠 EasyLease Admin")
	assert.Contains(t, html, `href="https://easylease.example"`)
	assert.Contains(t, html, `<a href="/" class="active">`)
	assert.Contains(t, html, "Algo falló")
	assert.Contains(t, html, "No hay listings creados aún")
	assert.Contains(t, html, "No hay leads creados aún")
}

func TestDashboardRecent(t *testing.T) {
	d := loaders.NewDashboard(
		[]domain.Listing{{ID: "1", Title: "Sunny Room", PricePerWeek: 250, Address: "1 Main St", Status: domain.ListingPublished}},
		[]domain.Lead{{ID: "a", Name: "Ana", Email: "ana@example.com", Status: domain.LeadNew}},
		nil,
	)
	html := render(t, "dashboard", Page{Path: "/", Data: d})
	assert.Contains(t, html, "Sunny Room")
	assert.Contains(t, html, "250,00 €/semana • 1 Main St")
	assert.Contains(t, html, "1 publicados")
	assert.Contains(t, html, "1 nuevos")
	assert.Contains(t, html, "Publicado")
}

func TestListingsEmptyStateHasCreateLink(t *testing.T) {
	html := render(t, "listings/index", Page{Path: "/listings", Data: ListingsData{Rows: []domain.Listing{}, Stats: loaders.ListingStats(nil)}})
	assert.Contains(t, html, "No hay listings todavía")
	assert.Contains(t, html, `href="/listings/create"`)
	assert.NotContains(t, html, "<table>")
}

func TestListingsRowsAndDeletingMarker(t *testing.T) {
	rows := []domain.Listing{
		{ID: "1", Title: "One", Status: domain.ListingDraft, RoomType: domain.RoomSingle},
		{ID: "2", Title: "Two", Status: domain.ListingPublished, RoomType: domain.RoomDouble},
	}
	html := render(t, "listings/index", Page{Path: "/listings", Data: ListingsData{
		Rows: rows, Deleting: "2", Stats: loaders.ListingStats(rows),
		ConfirmDelete: "¿Estás seguro de que quieres eliminar esta propiedad?",
	}})
	assert.Contains(t, html, `action="/listings/1/toggle-status"`)
	assert.Contains(t, html, `action="/listings/2/delete"`)
	assert.Contains(t, html, "Eliminando...")
	assert.Contains(t, html, "Borrador")
	assert.Contains(t, html, "Doble")
}

func TestListLoadError(t *testing.T) {
	html := render(t, "partners/index", Page{Path: "/partners", Data: PartnersData{
		Rows: []domain.Partner{}, Err: "connection refused", Hint: "Asegúrate de que la API esté ejecutándose en http://localhost:4000",
		Stats: loaders.PartnerStats(nil),
	}})
	assert.Contains(t, html, "connection refused")
	assert.Contains(t, html, "http://localhost:4000")
	assert.NotContains(t, html, "No hay partners todavía")
}

func TestLeadsShowDeletedListing(t *testing.T) {
	rows := []domain.Lead{
		{ID: "a", Name: "Ana", Status: domain.LeadNew, ListingID: domain.ListingRef{ID: "gone"}},
		{ID: "b", Name: "Ben", Status: domain.LeadContacted, ListingID: domain.ListingRef{ID: "x", Title: "Sunny", Expanded: true}},
	}
	html := render(t, "leads/index", Page{Path: "/leads", Data: LeadsData{Rows: rows, Stats: loaders.LeadStats(rows)}})
	assert.Contains(t, html, "Listing eliminado")
	assert.Contains(t, html, `href="/listings/x/view"`)
	assert.Contains(t, html, `<option value="contacted" selected>Contactado</option>`)
}

func TestListingFormRender(t *testing.T) {
	d := forms.NewListingDraft(&domain.Listing{
		ID: "L1", Title: "Sunny", Address: "1 Main St", Images: []string{"https://cdn/1.jpg", "https://cdn/2.jpg"},
		HouseFeatures: []string{"wifi", "garden"},
	})
	d.Problems = map[string]string{"title": "Este campo es obligatorio"}
	html := render(t, "listings/form", Page{Path: "/listings/L1/edit", Data: NewListingFormData(d, "/listings/L1/edit")})
	assert.Contains(t, html, `action="/listings/L1/edit"`)
	assert.Contains(t, html, "Actualizar")
	assert.Contains(t, html, `value="wifi, garden"`)
	assert.Contains(t, html, `value="move-image:1:0"`)
	assert.Contains(t, html, `value="remove-image:0"`)
	assert.Contains(t, html, "Máximo 5MB por imagen, hasta 10 imágenes")
	assert.Contains(t, html, "Este campo es obligatorio")
}

func TestCreateFormsRender(t *testing.T) {
	html := render(t, "leads/form", Page{Path: "/leads/create", Data: FormData[domain.LeadInput]{Draft: forms.NewLeadDraft(nil), Action: "/leads/create", Back: "/leads"}})
	assert.Contains(t, html, "Crear Lead")
	assert.Contains(t, html, `<option value="new" selected>Nuevo</option>`)

	html = render(t, "partners/form", Page{Path: "/partners/create", Data: FormData[domain.PartnerInput]{Draft: forms.NewPartnerDraft(nil), Action: "/partners/create", Back: "/partners"}})
	assert.Contains(t, html, "Crear Partner")
	assert.Contains(t, html, `<option value="pending" selected>Pendiente</option>`)
}

func TestMissingPage(t *testing.T) {
	html := render(t, "missing", Page{Data: MissingData{Status: 404, Message: "Listing no encontrada", Back: "/listings"}})
	assert.Contains(t, html, "404")
	assert.Contains(t, html, "Listing no encontrada")
}
