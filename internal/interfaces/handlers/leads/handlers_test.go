package leads

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"easylease-admin/internal/application/forms"
	"easylease-admin/internal/application/loaders"
	"easylease-admin/internal/application/tables"
	"easylease-admin/internal/infrastructure/backend"
	"easylease-admin/internal/infrastructure/session"
	"easylease-admin/internal/interfaces/handlers/pages"
	"easylease-admin/internal/interfaces/views"
	"easylease-admin/internal/middleware"
	"easylease-admin/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sid = "0a8b6d1e-2f3c-4d5e-8a9b-aabbccddeeff"

const leadsJSON = `{"success":true,"data":[
	{"_id":"D1","name":"Ana García","email":"ana@example.com","phone":"600111222","status":"new","listing_id":{"_id":"L1","title":"Piso Centro","slug":"piso-centro"},"createdAt":"2024-04-01T09:00:00Z"},
	{"_id":"D2","name":"Luis Pérez","email":"luis@example.com","status":"contacted","listing_id":"L7","createdAt":"2024-04-02T09:00:00Z"}
]}`

const leadD1 = `{"success":true,"data":{"_id":"D1","name":"Ana García","email":"ana@example.com","phone":"600111222","message":"Me interesa la habitación","status":"new","listing_id":{"_id":"L1","title":"Piso Centro"},"createdAt":"2024-04-01T09:00:00Z","updatedAt":"2024-04-01T09:30:00Z"}}`

type fakeBackend struct {
	mu     sync.Mutex
	bodies map[string]string

	statusCode int
	// entered and release hold a PUT open while set.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeBackend) record(r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[r.Method+" "+r.URL.Path] = string(b)
}

func (f *fakeBackend) body(call string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bodies[call]
	return b, ok
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/leads", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		reply(w, 200, leadsJSON)
	})
	mux.HandleFunc("GET /api/leads/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if r.PathValue("id") != "D1" {
			reply(w, 404, `{"success":false,"error":"Lead not found"}`)
			return
		}
		reply(w, 200, leadD1)
	})
	mux.HandleFunc("PATCH /api/leads/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if f.statusCode != 0 {
			reply(w, f.statusCode, `{"success":false,"error":"Invalid transition"}`)
			return
		}
		reply(w, 200, `{"success":true,"data":{"_id":"`+r.PathValue("id")+`","status":"contacted"}}`)
	})
	mux.HandleFunc("POST /api/leads", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		reply(w, 201, `{"success":true,"data":{"_id":"D9"}}`)
	})
	mux.HandleFunc("PUT /api/leads/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if f.release != nil {
			f.entered <- struct{}{}
			<-f.release
		}
		reply(w, 500, `{"success":false}`)
	})
	mux.HandleFunc("DELETE /api/leads/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		reply(w, 200, `{"success":true,"data":{"message":"Lead deleted"}}`)
	})
	return mux
}

func setupLeads(t *testing.T) (*fiber.App, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{bodies: map[string]string{}}
	srv := httptest.NewServer(fb.handler())
	t.Cleanup(srv.Close)

	api := backend.New(srv.URL+"/api", time.Second)
	store := session.NewMemoryStore()
	h := New(
		loaders.New(api, srv.URL+"/api"),
		tables.NewLeads(api, store),
		forms.NewLeads(api, store, validation.New()),
	)

	app := fiber.New(fiber.Config{Views: views.NewEngine(""), ErrorHandler: middleware.ErrorHandler(nil)})
	app.Use(middleware.Session(middleware.SessionConfig{}))
	app.Get("/leads", h.Index)
	app.Get("/leads/create", h.New)
	app.Post("/leads/create", h.Submit)
	app.Get("/leads/:id/view", h.View)
	app.Get("/leads/:id/edit", h.Edit)
	app.Post("/leads/:id/edit", h.Submit)
	app.Post("/leads/:id/delete", h.Delete)
	app.Post("/leads/:id/status", h.Status)
	return app, fb
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	req.Header.Set("Cookie", middleware.SessionCookieName+"="+sid)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	return send(t, app, httptest.NewRequest(http.MethodGet, path, nil))
}

func post(t *testing.T, app *fiber.App, path string, form url.Values) (*http.Response, string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return send(t, app, req)
}

func TestIndex_ShowsListingReference(t *testing.T) {
	app, _ := setupLeads(t)
	resp, html := get(t, app, "/leads")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "Ana García")
	assert.Contains(t, html, `href="/listings/L1/view"`)
	assert.Contains(t, html, "Listing eliminado")
}

func TestStatus_UsesEchoedStatus(t *testing.T) {
	app, fb := setupLeads(t)
	get(t, app, "/leads")

	resp, html := post(t, app, "/leads/D1/status", url.Values{"status": {"contacted"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, ok := fb.body("PATCH /api/leads/D1/status")
	require.True(t, ok)
	assert.JSONEq(t, `{"status":"contacted"}`, body)
	assert.Equal(t, 2, strings.Count(html, `<option value="contacted" selected>`))
}

func TestStatus_InvalidValueSkipsBackend(t *testing.T) {
	app, fb := setupLeads(t)
	get(t, app, "/leads")

	_, html := post(t, app, "/leads/D1/status", url.Values{"status": {"archived"}})
	_, called := fb.body("PATCH /api/leads/D1/status")
	assert.False(t, called)
	assert.Contains(t, html, "Error al actualizar el estado")
}

func TestStatus_FailureAlertsWithServerText(t *testing.T) {
	app, fb := setupLeads(t)
	fb.statusCode = 422
	get(t, app, "/leads")

	_, html := post(t, app, "/leads/D1/status", url.Values{"status": {"converted"}})
	assert.Contains(t, html, "Error al actualizar el estado: Invalid transition")
	assert.Equal(t, 1, strings.Count(html, `<option value="new" selected>`))
}

func TestDelete_Confirmed(t *testing.T) {
	app, _ := setupLeads(t)
	get(t, app, "/leads")

	_, html := post(t, app, "/leads/D2/delete", url.Values{"confirmed": {"yes"}})
	assert.NotContains(t, html, "Luis Pérez")
	assert.Contains(t, html, "Ana García")
}

func TestSubmitCreate_Redirects(t *testing.T) {
	app, fb := setupLeads(t)
	get(t, app, "/leads/create")

	resp, _ := post(t, app, "/leads/create", url.Values{
		"action": {"save"},
		"name":   {"Marta"},
		"email":  {"marta@example.com"},
		"status": {"new"},
	})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/leads", resp.Header.Get("Location"))
	body, ok := fb.body("POST /api/leads")
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"Marta","email":"marta@example.com","phone":"","message":"","status":"new"}`, body)
}

func TestSubmitCreate_InvalidEmailStaysOnForm(t *testing.T) {
	app, fb := setupLeads(t)
	get(t, app, "/leads/create")

	resp, html := post(t, app, "/leads/create", url.Values{
		"name":   {"Marta"},
		"email":  {"not-an-email"},
		"status": {"new"},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, html, `value="not-an-email"`)
	_, called := fb.body("POST /api/leads")
	assert.False(t, called)
}

func TestSubmitEdit_BackendFailureKeepsDraft(t *testing.T) {
	app, _ := setupLeads(t)
	get(t, app, "/leads/D1/edit")

	resp, html := post(t, app, "/leads/D1/edit", url.Values{
		"name":    {"Ana G."},
		"email":   {"ana@example.com"},
		"message": {"Sigue interesada"},
		"status":  {"contacted"},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "Error: Error al guardar el lead")
	assert.Contains(t, html, `value="Ana G."`)
	assert.Contains(t, html, "Sigue interesada")
}

func TestView(t *testing.T) {
	app, _ := setupLeads(t)
	resp, html := get(t, app, "/leads/D1/view")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "Me interesa la habitación")
	assert.Contains(t, html, "mailto:ana@example.com")

	resp, html = get(t, app, "/leads/D404/view")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, html, "Lead no encontrado")
}

func TestSubmitEdit_SecondSubmitWhileSavingKeepsDraft(t *testing.T) {
	app, fb := setupLeads(t)
	fb.entered = make(chan struct{})
	fb.release = make(chan struct{})
	get(t, app, "/leads/D1/edit")

	done := make(chan struct{})
	go func() {
		defer close(done)
		post(t, app, "/leads/D1/edit", url.Values{
			"name":   {"Ana Primera"},
			"email":  {"ana@example.com"},
			"status": {"contacted"},
		})
	}()
	<-fb.entered

	resp, html := post(t, app, "/leads/D1/edit", url.Values{
		"name":   {"Ana Segunda"},
		"email":  {"ana@example.com"},
		"status": {"discarded"},
	})
	close(fb.release)
	<-done

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, html, pages.BusyAlert)
	assert.Contains(t, html, `value="Ana Primera"`)
	assert.NotContains(t, html, "Ana Segunda")
}
