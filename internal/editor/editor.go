// Package editor implements the edit-product workflow: an existing product
// copied into a transient buffer, mutated field by field, and written back
// with an explicit save.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wichananm65/shop-admin-console/internal/catalog"
	"github.com/wichananm65/shop-admin-console/internal/draft"
	"github.com/wichananm65/shop-admin-console/internal/notify"
)

// ErrNotEditing is returned by operations that need an open editing surface.
var ErrNotEditing = errors.New("no product is being edited")

// Editor owns the edit buffer. The buffer is a copy of the selected record;
// mutations never reach the source collection until Save succeeds.
type Editor struct {
	mu   sync.Mutex
	open bool
	id   string
	buf  draft.Draft

	svc     catalog.Service
	notices notify.Notifier
	// refresh reloads the source collection after a successful save
	refresh func()
}

func New(svc catalog.Service, n notify.Notifier, refresh func()) *Editor {
	if refresh == nil {
		refresh = func() {}
	}
	return &Editor{svc: svc, notices: n, refresh: refresh}
}

// Begin copies the given record into the buffer and opens the surface.
func (e *Editor) Begin(p catalog.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = true
	e.id = p.ProductID
	e.buf = draft.Draft{
		Title:           p.Title,
		Description:     p.Description,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		Quantity:        p.Quantity,
		Live:            p.Live,
		Stock:           p.Stock,
	}
}

func (e *Editor) Open() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// Buffer returns the product id and a copy of the buffer, and whether the
// surface is open.
func (e *Editor) Buffer() (string, draft.Draft, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id, e.buf.Clone(), e.open
}

// Set merges a value into the buffer by field. Unlike the create workflow
// there is no guard on the discounted price here; the edit surface defers
// everything to save-time validation.
func (e *Editor) Set(f draft.Field, v any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return ErrNotEditing
	}
	return e.buf.Apply(f, v)
}

// SetDescription is the dedicated description path; behaviorally identical
// to Set(FieldDescription, v).
func (e *Editor) SetDescription(v string) error {
	return e.Set(draft.FieldDescription, v)
}

// Close discards the buffer unconditionally and closes the surface.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = false
	e.id = ""
	e.buf = draft.Blank()
}

// Save validates the buffer with the same rule set as the create workflow,
// writes it to the catalog, refreshes the source collection, and closes the
// surface. On any failure the surface stays open with the buffer intact.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return ErrNotEditing
	}
	id := e.id
	buf := e.buf.Clone()
	e.mu.Unlock()

	if err := draft.Validate(buf); err != nil {
		e.notices.Error(err.Error())
		return err
	}

	p := catalog.NewProduct{
		Title:           buf.Title,
		Description:     buf.Description,
		Price:           buf.Price,
		DiscountedPrice: buf.DiscountedPrice,
		Quantity:        buf.Quantity,
		Live:            buf.Live,
		Stock:           buf.Stock,
	}
	if err := e.svc.UpdateProduct(ctx, id, p); err != nil {
		e.notices.Error("Error in updating product")
		return fmt.Errorf("update product %s: %w", id, err)
	}

	e.notices.Success("Product is updated")
	e.refresh()
	e.Close()
	return nil
}
