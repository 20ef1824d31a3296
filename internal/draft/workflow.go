package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cast"

	"github.com/wichananm65/shop-admin-console/internal/catalog"
	"github.com/wichananm65/shop-admin-console/internal/notify"
)

// CategoryNone is the selection sentinel for "no category assigned".
const CategoryNone = "none"

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not settled. A double-clicked submit button must not create
// the product twice.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// UploadError reports that the product was created but its image upload
// failed: the product exists server-side without an image, and the draft is
// kept so the operator can retry.
type UploadError struct {
	ProductID string
	Err       error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("product %s created but image upload failed: %v", e.ProductID, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Phase is the create workflow's position in its submit state machine.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseUploading
)

// Workflow owns one draft and its category selection. All mutation goes
// through its methods; the draft is never shared.
type Workflow struct {
	mu       sync.Mutex
	draft    Draft
	category string
	phase    Phase

	svc     catalog.Service
	notices notify.Notifier
}

func NewWorkflow(svc catalog.Service, n notify.Notifier) *Workflow {
	return &Workflow{
		draft:    Blank(),
		category: CategoryNone,
		svc:      svc,
		notices:  n,
	}
}

// Set merges a value into a simple draft field. The discounted price is not a
// simple field; it goes through SetDiscountedPrice and its guard.
func (w *Workflow) Set(f Field, v any) error {
	if f == FieldDiscountedPrice {
		return w.SetDiscountedPrice(v)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Apply(f, v)
}

// SetDiscountedPrice rejects values above the current price before any
// mutation. A value exactly equal to the price is let in here and fails
// later at submit.
func (w *Workflow) SetDiscountedPrice(v any) error {
	n, err := cast.ToFloat64E(v)
	if err != nil {
		return applyErr(FieldDiscountedPrice, err)
	}
	w.mu.Lock()
	if n > w.draft.Price {
		w.mu.Unlock()
		w.notices.Error("Invalid discount value")
		return &ValidationError{Field: FieldDiscountedPrice, Message: "Invalid discount value"}
	}
	w.draft.DiscountedPrice = n
	w.mu.Unlock()
	return nil
}

// SelectCategory records the selection; CategoryNone means uncategorized.
func (w *Workflow) SelectCategory(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id == "" {
		id = CategoryNone
	}
	w.category = id
}

func (w *Workflow) Category() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.category
}

// AttachImage gates the file on content type and, on acceptance, stores the
// attachment and its preview in one step. A rejected file clears any
// previously attached image.
func (w *Workflow) AttachImage(name string, data []byte) error {
	att, err := NewAttachment(name, data)
	if err != nil {
		w.mu.Lock()
		w.draft.Image = nil
		w.mu.Unlock()
		w.notices.Error(err.Error())
		return err
	}
	w.mu.Lock()
	w.draft.Image = att
	w.mu.Unlock()
	return nil
}

func (w *Workflow) ClearImage() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Image = nil
}

// Clear resets the draft to the blank state. The category selection is a
// separate control and survives a clear.
func (w *Workflow) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = Blank()
}

// Snapshot returns an independent copy of the current draft for rendering.
func (w *Workflow) Snapshot() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

func (w *Workflow) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Submit validates the draft, creates the product, and uploads the image if
// one is attached. The upload never starts unless the create has settled
// successfully. The draft resets to blank only on full success; any failure
// leaves it untouched for correction and retry.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.phase != PhaseEditing {
		w.mu.Unlock()
		return ErrSubmitInFlight
	}
	if err := Validate(w.draft); err != nil {
		w.mu.Unlock()
		w.notices.Error(err.Error())
		return err
	}
	w.phase = PhaseSubmitting
	d := w.draft.Clone()
	category := w.category
	w.mu.Unlock()

	productID, err := w.createProduct(ctx, d, category)
	if err != nil {
		w.setPhase(PhaseEditing)
		w.notices.Error("Error in creating product, check product details")
		return fmt.Errorf("create product: %w", err)
	}
	w.notices.Success("Product is created")

	if d.Image == nil {
		w.finish()
		return nil
	}

	w.setPhase(PhaseUploading)
	if err := w.svc.UploadProductImage(ctx, productID, d.Image.Name, d.Image.ContentType, d.Image.Data); err != nil {
		w.setPhase(PhaseEditing)
		w.notices.Error("Error in uploading image")
		return &UploadError{ProductID: productID, Err: err}
	}
	w.notices.Success("Image uploaded")
	w.finish()
	return nil
}

// exactly one of the two create operations runs per submission, chosen by
// the category sentinel
func (w *Workflow) createProduct(ctx context.Context, d Draft, category string) (string, error) {
	p := catalog.NewProduct{
		Title:           d.Title,
		Description:     d.Description,
		Price:           d.Price,
		DiscountedPrice: d.DiscountedPrice,
		Quantity:        d.Quantity,
		Live:            d.Live,
		Stock:           d.Stock,
	}
	if category == CategoryNone {
		return w.svc.CreateProduct(ctx, p)
	}
	return w.svc.CreateProductInCategory(ctx, p, category)
}

func (w *Workflow) setPhase(p Phase) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.phase = p
}

func (w *Workflow) finish() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.phase = PhaseEditing
	w.draft = Blank()
}
