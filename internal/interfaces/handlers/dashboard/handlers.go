package dashboard

import (
	"easylease-admin/internal/application/loaders"
	"easylease-admin/internal/interfaces/handlers/pages"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Loader *loaders.Loader
}

// Index GET / renders the counters and the most recent listings and leads.
func (h *Handlers) Index(c *fiber.Ctx) error {
	return pages.Render(c, "dashboard", "Dashboard", "", h.Loader.Dashboard(c.UserContext()))
}
