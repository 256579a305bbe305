package pages

import (
	"context"
	"errors"

	"easylease-admin/internal/application/forms"
	"easylease-admin/internal/application/loaders"
	"easylease-admin/internal/application/tables"
	"easylease-admin/internal/interfaces/views"

	"github.com/gofiber/fiber/v2"
)

// ActionFunc handles a form button other than "save". handled is false for
// actions it does not know, which are then treated as a save.
type ActionFunc[I any] func(c *fiber.Ctx, sid, id, action string, args []int) (out forms.Outcome, d forms.Draft[I], handled bool, err error)

// Resource is the list, form and detail flow of one backend collection.
// T is the record shown in tables, I the editable input behind the form.
type Resource[T tables.Record[T], I any] struct {
	// Name is the route prefix and template folder, e.g. "listings".
	Name     string
	Title    string
	NotFound string

	Table    *tables.Controller[T]
	Form     *forms.Form[I]
	LoadList func(ctx context.Context) loaders.List[T]
	LoadOne  func(ctx context.Context, id string) loaders.Detail[T]
	Stats    func(rows []T) []loaders.Stat
	NewDraft func(record *T) forms.Draft[I]
	Apply    func(d *forms.Draft[I], get forms.FieldSource)
	FormData func(d forms.Draft[I], action string) interface{}
	Actions  ActionFunc[I]
}

func (r *Resource[T, I]) listPath() string { return "/" + r.Name }

func (r *Resource[T, I]) formAction(id string) string {
	if id == "" {
		return r.listPath() + "/create"
	}
	return r.listPath() + "/" + id + "/edit"
}

func (r *Resource[T, I]) renderTable(c *fiber.Ctx, t tables.Table[T], alert string) error {
	return Render(c, r.Name+"/index", r.Title, alert, views.ListData[T]{
		Rows:          t.Rows,
		Deleting:      t.Deleting,
		Stats:         r.Stats(t.Rows),
		ConfirmDelete: r.Table.Messages().ConfirmDelete,
	})
}

func (r *Resource[T, I]) renderForm(c *fiber.Ctx, d forms.Draft[I], alert string) error {
	return Render(c, r.Name+"/form", r.Title, alert, r.FormData(d, r.formAction(d.ID)))
}

// Index GET /{name}: loads the collection and seeds the session table with it.
func (r *Resource[T, I]) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	list := r.LoadList(ctx)
	t, err := r.Table.Seed(ctx, SessionID(c), list.Items)
	if err != nil {
		return err
	}
	return r.renderList(c, t.Rows, list)
}

func (r *Resource[T, I]) renderList(c *fiber.Ctx, rows []T, list loaders.List[T]) error {
	return Render(c, r.Name+"/index", r.Title, "", views.ListData[T]{
		Rows:          rows,
		Stats:         r.Stats(rows),
		Err:           list.Err,
		Hint:          list.Hint,
		ConfirmDelete: r.Table.Messages().ConfirmDelete,
	})
}

// WithTable runs action once the session table exists. A table lost with the
// session (expired, never listed, served by another instance) is reloaded from
// the backend first; if that load fails the action is skipped and the load
// error is shown instead.
func (r *Resource[T, I]) WithTable(c *fiber.Ctx, action func() error) error {
	ctx := c.UserContext()
	sid := SessionID(c)
	_, ok, err := r.Table.State(ctx, sid)
	if err != nil {
		return err
	}
	if !ok {
		list := r.LoadList(ctx)
		if list.Err != "" {
			return r.renderList(c, nil, list)
		}
		if _, err := r.Table.Seed(ctx, sid, list.Items); err != nil {
			return err
		}
	}
	return action()
}

// Delete POST /{name}/:id/delete
func (r *Resource[T, I]) Delete(c *fiber.Ctx) error {
	return r.WithTable(c, func() error {
		res, err := r.Table.Delete(c.UserContext(), SessionID(c), c.Params("id"), Confirmed(c))
		if err != nil {
			return err
		}
		return r.renderTable(c, res.Table, res.Alert)
	})
}

// Status POST /{name}/:id/status with the target status in the "status" field.
func (r *Resource[T, I]) Status(c *fiber.Ctx) error {
	return r.WithTable(c, func() error {
		res, err := r.Table.ChangeStatus(c.UserContext(), SessionID(c), c.Params("id"), c.FormValue("status"))
		if err != nil {
			return err
		}
		return r.RenderResult(c, res)
	})
}

// RenderResult shows the table after an action.
func (r *Resource[T, I]) RenderResult(c *fiber.Ctx, res tables.Result[T]) error {
	return r.renderTable(c, res.Table, res.Alert)
}

// New GET /{name}/create starts an empty draft.
func (r *Resource[T, I]) New(c *fiber.Ctx) error {
	d, err := r.Form.Start(c.UserContext(), SessionID(c), r.NewDraft(nil))
	if err != nil {
		return err
	}
	return r.renderForm(c, d, "")
}

// Edit GET /{name}/:id/edit seeds the draft from the stored record.
func (r *Resource[T, I]) Edit(c *fiber.Ctx) error {
	det := r.LoadOne(c.UserContext(), c.Params("id"))
	if !det.Found() {
		return r.missing(c, det)
	}
	d, err := r.Form.Start(c.UserContext(), SessionID(c), r.NewDraft(&det.Item))
	if err != nil {
		return err
	}
	return r.renderForm(c, d, "")
}

// View GET /{name}/:id/view
func (r *Resource[T, I]) View(c *fiber.Ctx) error {
	det := r.LoadOne(c.UserContext(), c.Params("id"))
	if !det.Found() {
		return r.missing(c, det)
	}
	return Render(c, r.Name+"/view", r.Title, "", det.Item)
}

func (r *Resource[T, I]) missing(c *fiber.Ctx, det loaders.Detail[T]) error {
	if det.NotFound {
		return Missing(c, fiber.StatusNotFound, r.NotFound, r.listPath())
	}
	return Missing(c, fiber.StatusBadGateway, "No se pudo cargar: "+det.Err, r.listPath())
}

// Submit POST /{name}/create and /{name}/:id/edit. Every button first stores the
// typed values in the draft, then runs its own action.
func (r *Resource[T, I]) Submit(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sid := SessionID(c)
	id := c.Params("id")

	restored, err := r.ensureDraft(c, sid, id)
	if err != nil || !restored {
		return err
	}
	get := Fields(c)
	if _, err := r.Form.Edit(ctx, sid, id, func(d *forms.Draft[I]) error {
		if d.Submitting {
			return forms.ErrInFlight
		}
		r.Apply(d, get)
		return nil
	}); err != nil {
		return r.finish(c, sid, id, forms.Outcome{}, forms.Draft[I]{}, err)
	}

	name, args := Action(c.FormValue("action"))
	if name != "" && name != "save" && r.Actions != nil {
		out, d, handled, err := r.Actions(c, sid, id, name, args)
		if handled {
			return r.finish(c, sid, id, out, d, err)
		}
	}

	out, d, err := r.Form.Submit(ctx, sid, id)
	return r.finish(c, sid, id, out, d, err)
}

func (r *Resource[T, I]) finish(c *fiber.Ctx, sid, id string, out forms.Outcome, d forms.Draft[I], err error) error {
	if errors.Is(err, forms.ErrInFlight) {
		current, _, lerr := r.Form.Load(c.UserContext(), sid, id)
		if lerr != nil {
			return lerr
		}
		return r.renderForm(c, current, BusyAlert)
	}
	if err != nil {
		return err
	}
	if out.Redirect != "" {
		return c.Redirect(out.Redirect, fiber.StatusSeeOther)
	}
	return r.renderForm(c, d, out.Alert)
}

// ensureDraft restores a draft lost with the session (expired or never opened the
// form page): from the stored record in edit mode, from defaults otherwise. When
// the record cannot be loaded the missing page is rendered and restored is false.
func (r *Resource[T, I]) ensureDraft(c *fiber.Ctx, sid, id string) (restored bool, err error) {
	ctx := c.UserContext()
	_, ok, err := r.Form.Load(ctx, sid, id)
	if err != nil || ok {
		return ok, err
	}
	d := r.NewDraft(nil)
	if id != "" {
		det := r.LoadOne(ctx, id)
		if !det.Found() {
			return false, r.missing(c, det)
		}
		d = r.NewDraft(&det.Item)
		d.ID = id
	}
	if _, err := r.Form.Start(ctx, sid, d); err != nil {
		return false, err
	}
	return true, nil
}
