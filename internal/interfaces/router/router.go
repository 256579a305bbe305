package router

import (
	"easylease-admin/internal/application/forms"
	"easylease-admin/internal/application/loaders"
	"easylease-admin/internal/application/tables"
	"easylease-admin/internal/config"
	"easylease-admin/internal/infrastructure/backend"
	"easylease-admin/internal/infrastructure/session"
	dashhandler "easylease-admin/internal/interfaces/handlers/dashboard"
	healthhandler "easylease-admin/internal/interfaces/handlers/health"
	leadhandler "easylease-admin/internal/interfaces/handlers/leads"
	listhandler "easylease-admin/internal/interfaces/handlers/listings"
	partnerhandler "easylease-admin/internal/interfaces/handlers/partners"
	"easylease-admin/internal/interfaces/handlers/pages"
	"easylease-admin/internal/interfaces/views"
	"easylease-admin/internal/middleware"
	"easylease-admin/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// bodyLimit leaves room for a full image batch (10 files of 5MB) plus form fields.
const bodyLimit = 64 << 20

// CreateApp builds the Fiber app with all global middleware and route registration.
// The returned Redis client is nil when REDIS_URL is not set.
func CreateApp(cfg *config.Config) (*fiber.App, *redis.Client, error) {
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		EnableTrustedProxyCheck: true,
		BodyLimit:               bodyLimit,
		Views:                   views.NewEngine(cfg.PublicURL),
		ErrorHandler:            middleware.ErrorHandler(rdb),
	})

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.HealthMarker(rdb))

	var store session.Store
	if rdb != nil {
		store = session.NewRedisStore(rdb)
	} else {
		log.Warn().Msg("REDIS_URL not set, keeping view state in memory")
		store = session.NewMemoryStore()
	}

	api := backend.New(cfg.APIURL, cfg.APITimeout)
	loader := loaders.New(api, cfg.APIURL)
	v := validation.New()

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		API:            api,
		PublicURL:      cfg.PublicURL,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	status := app.Group("/health", middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: []string{cfg.PublicURL},
	}))
	status.Get("/", hh.Dashboard)
	status.Get("/json", hh.JSON)
	status.Get("/errors", hh.Errors)
	status.Get("/reset", hh.Reset)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(middleware.Session(middleware.SessionConfig{IsProduction: cfg.IsProduction()}))

	dh := &dashhandler.Handlers{Loader: loader}
	app.Get("/", dh.Index)

	lh := listhandler.New(loader, tables.NewListings(api, store), forms.NewListings(api, store, v, cfg.UploadFolder))
	listings := app.Group("/listings")
	registerResource(listings, lh.Resource)
	listings.Post("/:id/toggle-status", lh.ToggleStatus)

	ld := leadhandler.New(loader, tables.NewLeads(api, store), forms.NewLeads(api, store, v))
	leads := app.Group("/leads")
	registerResource(leads, ld.Resource)
	leads.Post("/:id/status", ld.Status)

	ph := partnerhandler.New(loader, tables.NewPartners(api, store), forms.NewPartners(api, store, v))
	partners := app.Group("/partners")
	registerResource(partners, ph.Resource)
	partners.Post("/:id/status", ph.Status)

	app.Use(func(c *fiber.Ctx) error {
		return pages.Missing(c, fiber.StatusNotFound, "Página no encontrada", "/")
	})

	return app, rdb, nil
}

type resource interface {
	Index(c *fiber.Ctx) error
	New(c *fiber.Ctx) error
	Edit(c *fiber.Ctx) error
	View(c *fiber.Ctx) error
	Submit(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func registerResource(g fiber.Router, r resource) {
	g.Get("/", r.Index)
	g.Get("/create", r.New)
	g.Post("/create", r.Submit)
	g.Get("/:id/view", r.View)
	g.Get("/:id/edit", r.Edit)
	g.Post("/:id/edit", r.Submit)
	g.Post("/:id/delete", r.Delete)
}
