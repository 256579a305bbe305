package dashboard

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"easylease-admin/internal/application/loaders"
	"easylease-admin/internal/infrastructure/backend"
	"easylease-admin/internal/interfaces/views"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDashboard(t *testing.T, failLeads bool) *fiber.App {
	t.Helper()
	reply := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/listings/admin/all", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `{"success":true,"data":[
			{"_id":"L1","title":"Piso Centro","status":"published","price_per_week":250,"suburb":"Malasaña","createdAt":"2024-03-05T10:00:00Z"},
			{"_id":"L2","title":"Ático Sol","status":"draft","price_per_week":400,"address":"Gran Vía 2","createdAt":"2024-03-06T10:00:00Z"}
		]}`)
	})
	mux.HandleFunc("GET /api/leads", func(w http.ResponseWriter, r *http.Request) {
		if failLeads {
			reply(w, 500, `{"success":false}`)
			return
		}
		reply(w, 200, `{"success":true,"data":[{"_id":"D1","name":"Ana García","email":"ana@example.com","status":"new"}]}`)
	})
	mux.HandleFunc("GET /api/partners", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `{"success":true,"data":[{"_id":"P1","name":"Carmen","email":"c@inmo.es","status":"active"}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	api := backend.New(srv.URL+"/api", time.Second)
	h := &Handlers{Loader: loaders.New(api, srv.URL+"/api")}
	app := fiber.New(fiber.Config{Views: views.NewEngine("")})
	app.Get("/", h.Index)
	return app
}

func render(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

func TestIndex_ShowsCountersAndRecent(t *testing.T) {
	html := render(t, setupDashboard(t, false))
	assert.Contains(t, html, "1 publicados")
	assert.Contains(t, html, "1 nuevos")
	assert.Contains(t, html, "1 activos")
	assert.Contains(t, html, "Ático Sol")
	assert.Contains(t, html, "Malasaña")
	assert.Contains(t, html, "Ana García")
}

func TestIndex_AnyFailureEmptiesEverything(t *testing.T) {
	html := render(t, setupDashboard(t, true))
	assert.Contains(t, html, "0 publicados")
	assert.Contains(t, html, "0 activos")
	assert.Contains(t, html, "No hay listings creados aún")
	assert.Contains(t, html, "No hay leads creados aún")
	assert.NotContains(t, html, "Piso Centro")
}
