// Package forms holds create/edit drafts per session and submits them to the backend.
package forms

import (
	"context"
	"errors"

	"easylease-admin/internal/infrastructure/backend"
	"easylease-admin/internal/infrastructure/session"
	"easylease-admin/internal/pkg/validation"

	"github.com/rs/zerolog/log"
)

// ErrInFlight is returned when a submit or upload for the same draft is still running.
var ErrInFlight = errors.New("forms: request already in progress")

// Draft is the editable state of one form. ID is empty in create mode.
type Draft[I any] struct {
	ID            string            `json:"id,omitempty"`
	Input         I                 `json:"input"`
	Submitting    bool              `json:"submitting,omitempty"`
	Uploading     bool              `json:"uploading,omitempty"`
	DeletingImage string            `json:"deletingImage,omitempty"`
	Problems      map[string]string `json:"problems,omitempty"`
}

// Editing reports whether the draft updates an existing record.
func (d Draft[I]) Editing() bool { return d.ID != "" }

// Outcome of a form action. Redirect is set after a successful save.
type Outcome struct {
	Redirect string
	Alert    string
}

// Form is the submit workflow shared by the listing, lead and partner forms.
type Form[I any] struct {
	name       string
	listPath   string
	saveFailed string
	store      session.Store
	validate   *validation.Validator
	create     func(ctx context.Context, in I) error
	update     func(ctx context.Context, id string, in I) error
	prepare    func(in *I)
}

func (f *Form[I]) key(sid, id string) string {
	if id == "" {
		id = "new"
	}
	return session.Key(sid, "form", f.name, id)
}

// ListPath is where a successful save redirects to.
func (f *Form[I]) ListPath() string { return f.listPath }

// Start stores d as the session's draft, replacing any previous one.
func (f *Form[I]) Start(ctx context.Context, sid string, d Draft[I]) (Draft[I], error) {
	return d, session.Put(ctx, f.store, f.key(sid, d.ID), d)
}

// Load returns the stored draft for id ("" for create mode).
func (f *Form[I]) Load(ctx context.Context, sid, id string) (Draft[I], bool, error) {
	return session.Get[Draft[I]](ctx, f.store, f.key(sid, id))
}

// Edit applies fn to the stored draft atomically.
func (f *Form[I]) Edit(ctx context.Context, sid, id string, fn func(d *Draft[I]) error) (Draft[I], error) {
	return session.Mutate(ctx, f.store, f.key(sid, id), func(d *Draft[I]) error {
		d.ID = id
		return fn(d)
	})
}

// Discard drops the stored draft.
func (f *Form[I]) Discard(ctx context.Context, sid, id string) error {
	return f.store.Delete(ctx, f.key(sid, id))
}

// Submit validates the stored draft and sends it: POST in create mode, PUT in
// edit mode. The draft is kept on failure so nothing typed is lost.
func (f *Form[I]) Submit(ctx context.Context, sid, id string) (Outcome, Draft[I], error) {
	d, err := f.Edit(ctx, sid, id, func(d *Draft[I]) error {
		if d.Submitting {
			return ErrInFlight
		}
		if f.prepare != nil {
			f.prepare(&d.Input)
		}
		d.Problems = f.validate.Problems(f.validate.Struct(d.Input))
		if d.Problems == nil {
			d.Submitting = true
		}
		return nil
	})
	if err != nil {
		return Outcome{}, d, err
	}
	if d.Problems != nil {
		return Outcome{}, d, nil
	}

	if d.Editing() {
		err = f.update(ctx, d.ID, d.Input)
	} else {
		err = f.create(ctx, d.Input)
	}

	if err == nil {
		if derr := f.Discard(ctx, sid, id); derr != nil {
			log.Warn().Err(derr).Str("form", f.name).Msg("Could not discard draft")
		}
		d.Submitting = false
		return Outcome{Redirect: f.listPath}, d, nil
	}

	log.Error().Err(err).Str("form", f.name).Str("id", id).Msg("Error saving form")
	d, serr := f.Edit(ctx, sid, id, func(d *Draft[I]) error {
		d.Submitting = false
		return nil
	})
	return Outcome{Alert: f.saveAlert(err)}, d, serr
}

// saveAlert is "Error: <server text>" when the backend explained the failure and
// the generic message otherwise.
func (f *Form[I]) saveAlert(err error) string {
	if msg, ok := backend.Detail(err); ok {
		return "Error: " + msg
	}
	var be *backend.Error
	if errors.As(err, &be) {
		return "Error: " + f.saveFailed
	}
	return f.saveFailed
}
