package listings

import (
	"easylease-admin/internal/application/forms"
	"easylease-admin/internal/application/loaders"
	"easylease-admin/internal/application/tables"
	"easylease-admin/internal/domain"
	"easylease-admin/internal/interfaces/handlers/pages"
	"easylease-admin/internal/interfaces/views"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	*pages.Resource[domain.Listing, domain.ListingInput]
	table *tables.Listings
	form  *forms.Listings
}

func New(loader *loaders.Loader, table *tables.Listings, form *forms.Listings) *Handlers {
	h := &Handlers{table: table, form: form}
	h.Resource = &pages.Resource[domain.Listing, domain.ListingInput]{
		Name:     "listings",
		Title:    "Listings",
		NotFound: "Listing no encontrada",
		Table:    table.Controller,
		Form:     form.Form,
		LoadList: loader.Listings,
		LoadOne:  loader.Listing,
		Stats:    loaders.ListingStats,
		NewDraft: forms.NewListingDraft,
		Apply:    forms.ApplyListing,
		FormData: func(d forms.Draft[domain.ListingInput], action string) interface{} {
			return views.NewListingFormData(d, action)
		},
		Actions: h.imageAction,
	}
	return h
}

// ToggleStatus POST /listings/:id/toggle-status flips published and draft.
func (h *Handlers) ToggleStatus(c *fiber.Ctx) error {
	return h.WithTable(c, func() error {
		res, err := h.table.ToggleStatus(c.UserContext(), pages.SessionID(c), c.Params("id"))
		if err != nil {
			return err
		}
		return h.RenderResult(c, res)
	})
}

// imageAction runs the image buttons of the listing form.
func (h *Handlers) imageAction(c *fiber.Ctx, sid, id, action string, args []int) (forms.Outcome, forms.Draft[domain.ListingInput], bool, error) {
	ctx := c.UserContext()
	var (
		out forms.Outcome
		d   forms.Draft[domain.ListingInput]
		err error
	)
	switch {
	case action == "add-image":
		d, err = h.form.AddImage(ctx, sid, id, c.FormValue("new_image_url"))
	case action == "remove-image" && len(args) == 1:
		d, err = h.form.RemoveImage(ctx, sid, id, args[0])
	case action == "move-image" && len(args) == 2:
		d, err = h.form.MoveImage(ctx, sid, id, args[0], args[1])
	case action == "upload-images":
		files, release, ferr := pages.Uploads(c, "images")
		if ferr != nil {
			d, _, err = h.form.Load(ctx, sid, id)
			return forms.Outcome{Alert: "Error uploading images"}, d, true, err
		}
		defer release()
		out, d, err = h.form.UploadImages(ctx, sid, id, files)
	case action == "delete-image" && len(args) == 1:
		d, _, err = h.form.Load(ctx, sid, id)
		if err != nil || args[0] < 0 || args[0] >= len(d.Input.Images) {
			return out, d, true, err
		}
		out, d, err = h.form.DeleteImage(ctx, sid, id, d.Input.Images[args[0]], pages.Confirmed(c))
	case action == "remove-image" || action == "move-image" || action == "delete-image":
		// Malformed index: show the draft unchanged.
		d, _, err = h.form.Load(ctx, sid, id)
	default:
		return out, d, false, nil
	}
	return out, d, true, err
}
