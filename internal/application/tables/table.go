// Package tables reconciles the rows shown on a list page with the outcome of
// delete and status-change calls against the backend.
package tables

import (
	"context"
	"errors"

	"easylease-admin/internal/infrastructure/backend"
	"easylease-admin/internal/infrastructure/session"

	"github.com/rs/zerolog/log"
)

// Record is a row that can be identified and re-statused.
type Record[T any] interface {
	GetID() string
	GetStatus() string
	WithStatus(status string) T
}

// Table is the local copy of a list page. Rows keep the order they were seeded in.
type Table[T any] struct {
	Rows     []T    `json:"rows"`
	Deleting string `json:"deleting,omitempty"`
}

// Find returns the row with id.
func Find[T Record[T]](rows []T, id string) (T, bool) {
	for _, r := range rows {
		if r.GetID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Mutator performs the backend side of a table action.
type Mutator[T any] interface {
	Delete(ctx context.Context, id string) error
	// SetStatus returns the record as stored by the backend.
	SetStatus(ctx context.Context, id, status string) (T, error)
	ValidStatus(status string) bool
}

// Confirmer answers the delete confirmation prompt.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Messages are the user-facing texts of one entity's table.
type Messages struct {
	ConfirmDelete string
	DeleteFailed  string
	StatusFailed  string
}

// Result is the table after an action plus the alert to show, if any.
type Result[T any] struct {
	Table    Table[T]
	Alert    string
	Declined bool
}

var errBusy = errors.New("delete already in progress")

// Controller owns the table state of one entity per session.
type Controller[T Record[T]] struct {
	name     string
	mutator  Mutator[T]
	store    session.Store
	messages Messages
}

func NewController[T Record[T]](name string, m Mutator[T], store session.Store, msgs Messages) *Controller[T] {
	return &Controller[T]{name: name, mutator: m, store: store, messages: msgs}
}

func (c *Controller[T]) key(sid string) string {
	return session.Key(sid, "table", c.name)
}

// Messages returns the entity texts, used by templates for the confirm prompt.
func (c *Controller[T]) Messages() Messages { return c.messages }

// Seed replaces the session's table with rows from a fresh page load.
func (c *Controller[T]) Seed(ctx context.Context, sid string, rows []T) (Table[T], error) {
	if rows == nil {
		rows = []T{}
	}
	t := Table[T]{Rows: rows}
	return t, session.Put(ctx, c.store, c.key(sid), t)
}

// State returns the current table for sid; ok is false before the first Seed.
func (c *Controller[T]) State(ctx context.Context, sid string) (Table[T], bool, error) {
	return session.Get[Table[T]](ctx, c.store, c.key(sid))
}

// Delete removes a row after confirmation. A declined confirmation changes nothing
// and makes no backend call. On failure the rows are kept and an alert is returned.
func (c *Controller[T]) Delete(ctx context.Context, sid, id string, confirm Confirmer) (Result[T], error) {
	if confirm == nil || !confirm.Confirm(c.messages.ConfirmDelete) {
		t, _, err := c.State(ctx, sid)
		return Result[T]{Table: t, Declined: true}, err
	}

	_, err := session.Mutate(ctx, c.store, c.key(sid), func(t *Table[T]) error {
		if t.Deleting == id {
			return errBusy
		}
		t.Deleting = id
		return nil
	})
	if errors.Is(err, errBusy) {
		t, _, err := c.State(ctx, sid)
		return Result[T]{Table: t}, err
	}
	if err != nil {
		return Result[T]{}, err
	}

	callErr := c.mutator.Delete(ctx, id)

	t, err := session.Mutate(ctx, c.store, c.key(sid), func(t *Table[T]) error {
		if t.Deleting == id {
			t.Deleting = ""
		}
		if callErr != nil {
			return nil
		}
		kept := make([]T, 0, len(t.Rows))
		for _, r := range t.Rows {
			if r.GetID() != id {
				kept = append(kept, r)
			}
		}
		t.Rows = kept
		return nil
	})
	if err != nil {
		return Result[T]{}, err
	}
	if callErr != nil {
		log.Error().Err(callErr).Str("table", c.name).Str("id", id).Msg("Error deleting row")
		return Result[T]{Table: t, Alert: alertText(c.messages.DeleteFailed, callErr)}, nil
	}
	return Result[T]{Table: t}, nil
}

// ChangeStatus sets a row's status on the backend and then replaces only that
// row's status with the value the backend echoed.
func (c *Controller[T]) ChangeStatus(ctx context.Context, sid, id, status string) (Result[T], error) {
	if !c.mutator.ValidStatus(status) {
		t, _, err := c.State(ctx, sid)
		return Result[T]{Table: t, Alert: c.messages.StatusFailed}, err
	}

	updated, callErr := c.mutator.SetStatus(ctx, id, status)
	if callErr != nil {
		log.Error().Err(callErr).Str("table", c.name).Str("id", id).Str("status", status).Msg("Error updating status")
		t, _, err := c.State(ctx, sid)
		return Result[T]{Table: t, Alert: alertText(c.messages.StatusFailed, callErr)}, err
	}

	echoed := updated.GetStatus()
	if echoed == "" {
		echoed = status
	}
	t, err := session.Mutate(ctx, c.store, c.key(sid), func(t *Table[T]) error {
		for i, r := range t.Rows {
			if r.GetID() == id {
				t.Rows[i] = r.WithStatus(echoed)
			}
		}
		return nil
	})
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Table: t}, nil
}

// alertText is the fallback message followed by the server error text.
func alertText(fallback string, err error) string {
	msg := backend.Message(err)
	if msg == "" {
		return fallback
	}
	return fallback + ": " + msg
}
