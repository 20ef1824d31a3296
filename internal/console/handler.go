// Package console is the thin HTTP adapter binding operator input to the
// create and edit workflows. It renders nothing; responses are JSON the
// presentation layer consumes, with pending notices attached.
package console

import (
	"context"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/shop-admin-console/internal/catalog"
	"github.com/wichananm65/shop-admin-console/internal/draft"
	"github.com/wichananm65/shop-admin-console/internal/editor"
)

// the admin table loads everything in one page
const listingPageSize = 1000

type Handler struct {
	svc       catalog.Service
	imageBase string
	log       *zap.Logger
	store     *sessionStore
}

// NewHandler builds the console handler. imageBase is the catalog base URL
// used for the by-convention product image addresses; empty means relative.
func NewHandler(svc catalog.Service, imageBase string, log *zap.Logger) *Handler {
	return &Handler{
		svc:       svc,
		imageBase: imageBase,
		log:       log,
		store:     newSessionStore(),
	}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/admin/categories", h.getCategories)
	app.Get("/admin/products", h.getProducts)

	app.Get("/admin/draft", h.getDraft)
	app.Post("/admin/draft/field", h.postDraftField)
	app.Post("/admin/draft/discounted-price", h.postDiscountedPrice)
	app.Post("/admin/draft/category", h.postDraftCategory)
	app.Post("/admin/draft/image", h.postDraftImage)
	app.Delete("/admin/draft/image", h.deleteDraftImage)
	app.Delete("/admin/draft", h.deleteDraft)
	app.Post("/admin/draft/submit", h.postSubmit)

	app.Post("/admin/products/:id/edit", h.postBeginEdit)
	app.Get("/admin/edit", h.getEdit)
	app.Post("/admin/edit/field", h.postEditField)
	app.Post("/admin/edit/description", h.postEditDescription)
	app.Post("/admin/edit/save", h.postEditSave)
	app.Post("/admin/edit/close", h.postEditClose)
}

// respond attaches and drains the session's pending notices so every reply
// carries the toasts the workflows emitted while handling it.
func (h *Handler) respond(c *fiber.Ctx, s *session, status int, body fiber.Map) error {
	body["notices"] = s.notices.Drain()
	return c.Status(status).JSON(body)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	s := h.session(c)
	page, err := h.svc.ListCategories(c.Context(), 0, listingPageSize)
	if err != nil {
		// degrade to an empty list rather than failing the page
		h.log.Warn("category listing failed", zap.Error(err))
		s.notices.Error("Error in loading categories")
		page = catalog.CategoryPage{Content: []catalog.Category{}}
	}
	return h.respond(c, s, fiber.StatusOK, fiber.Map{"content": page.Content})
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	s := h.session(c)
	if err := h.reloadProducts(c.Context(), s); err != nil {
		h.log.Warn("product listing failed", zap.Error(err))
		s.notices.Error("Failed to load products")
	}
	s.mu.Lock()
	rows := make([]productRow, 0, len(s.products))
	for _, p := range s.products {
		rows = append(rows, productRow{Product: p, ImageURL: h.imageBase + "/products/image/" + p.ProductID})
	}
	s.mu.Unlock()
	return h.respond(c, s, fiber.StatusOK, fiber.Map{"content": rows})
}

func (h *Handler) reloadProducts(ctx context.Context, s *session) error {
	page, err := h.svc.ListProducts(ctx, 0, listingPageSize, "addedDate", "desc")
	if err != nil {
		s.setProducts([]catalog.Product{})
		return err
	}
	s.setProducts(page.Content)
	return nil
}

type productRow struct {
	catalog.Product
	ImageURL string `json:"imageUrl"`
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type valueRequest struct {
	Value string `json:"value"`
}

type categoryRequest struct {
	CategoryID string `json:"categoryId"`
}

func (h *Handler) getDraft(c *fiber.Ctx) error {
	s := h.session(c)
	return h.respond(c, s, fiber.StatusOK, fiber.Map{
		"draft":    draftView(s.workflow.Snapshot()),
		"category": s.workflow.Category(),
	})
}

func (h *Handler) postDraftField(c *fiber.Ctx) error {
	s := h.session(c)
	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": err.Error()})
	}
	f, err := draft.ParseField(req.Field)
	if err != nil {
		return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": err.Error()})
	}
	if err := s.workflow.Set(f, req.Value); err != nil {
		return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": err.Error()})
	}
	return h.respond(c, s, fiber.StatusOK, fiber.Map{"draft": draftView(s.workflow.Snapshot())})
}

func (h *Handler) postDiscountedPrice(c *fiber.Ctx) error {
	s := h.session(c)
	var req valueRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": err.Error()})
	}
	if err := s.workflow.SetDiscountedPrice(req.Value); err != nil {
		return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": err.Error()})
	}
	return h.respond(c, s, fiber.StatusOK, fiber.Map{"draft": draftView(s.workflow.Snapshot())})
}

func (h *Handler) postDraftCategory(c *fiber.Ctx) error {
	s := h.session(c)
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": err.Error()})
	}
	s.workflow.SelectCategory(req.CategoryID)
	return h.respond(c, s, fiber.StatusOK, fiber.Map{"category": s.workflow.Category()})
}

func (h *Handler) postDraftImage(c *fiber.Ctx) error {
	s := h.session(c)
	file, err := c.FormFile("image")
	if err != nil {
		return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": "image file is required"})
	}
	f, err := file.Open()
	if err != nil {
		return h.respond(c, s, fiber.StatusInternalServerError, fiber.Map{"message": err.Error()})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return h.respond(c, s, fiber.StatusInternalServerError, fiber.Map{"message": err.Error()})
	}
	if err := s.workflow.AttachImage(file.Filename, data); err != nil {
		return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": err.Error()})
	}
	return h.respond(c, s, fiber.StatusOK, fiber.Map{"draft": draftView(s.workflow.Snapshot())})
}

func (h *Handler) deleteDraftImage(c *fiber.Ctx) error {
	s := h.session(c)
	s.workflow.ClearImage()
	return h.respond(c, s, fiber.StatusOK, fiber.Map{"draft": draftView(s.workflow.Snapshot())})
}

func (h *Handler) deleteDraft(c *fiber.Ctx) error {
	s := h.session(c)
	s.workflow.Clear()
	return h.respond(c, s, fiber.StatusOK, fiber.Map{"draft": draftView(s.workflow.Snapshot())})
}

func (h *Handler) postSubmit(c *fiber.Ctx) error {
	s := h.session(c)
	err := s.workflow.Submit(c.Context())
	switch {
	case err == nil:
		return h.respond(c, s, fiber.StatusOK, fiber.Map{"draft": draftView(s.workflow.Snapshot())})
	case errors.Is(err, draft.ErrSubmitInFlight):
		return h.respond(c, s, fiber.StatusConflict, fiber.Map{"message": err.Error()})
	default:
		var ve *draft.ValidationError
		if errors.As(err, &ve) {
			return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{
				"message": ve.Message,
				"field":   ve.Field.String(),
			})
		}
		var ue *draft.UploadError
		if errors.As(err, &ue) {
			// the product exists remotely without its image; keep that
			// visible to the operator
			return h.respond(c, s, fiber.StatusBadGateway, fiber.Map{
				"message":   ue.Error(),
				"productId": ue.ProductID,
			})
		}
		h.log.Warn("submit failed", zap.Error(err))
		return h.respond(c, s, fiber.StatusBadGateway, fiber.Map{"message": err.Error()})
	}
}

func (h *Handler) postBeginEdit(c *fiber.Ctx) error {
	s := h.session(c)
	id := c.Params("id")
	p, ok := s.findProduct(id)
	if !ok {
		// the row may not have been loaded in this session yet
		if err := h.reloadProducts(c.Context(), s); err != nil {
			h.log.Warn("product listing failed", zap.Error(err))
		}
		if p, ok = s.findProduct(id); !ok {
			return h.respond(c, s, fiber.StatusNotFound, fiber.Map{"message": "Product not found"})
		}
	}
	s.editor.Begin(p)
	return h.editResponse(c, s, fiber.StatusOK)
}

func (h *Handler) getEdit(c *fiber.Ctx) error {
	s := h.session(c)
	if !s.editor.Open() {
		return h.respond(c, s, fiber.StatusNotFound, fiber.Map{"message": "no product is being edited"})
	}
	return h.editResponse(c, s, fiber.StatusOK)
}

func (h *Handler) postEditField(c *fiber.Ctx) error {
	s := h.session(c)
	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": err.Error()})
	}
	f, err := draft.ParseField(req.Field)
	if err != nil {
		return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": err.Error()})
	}
	if err := s.editor.Set(f, req.Value); err != nil {
		return h.editError(c, s, err)
	}
	return h.editResponse(c, s, fiber.StatusOK)
}

func (h *Handler) postEditDescription(c *fiber.Ctx) error {
	s := h.session(c)
	var req valueRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": err.Error()})
	}
	if err := s.editor.SetDescription(req.Value); err != nil {
		return h.editError(c, s, err)
	}
	return h.editResponse(c, s, fiber.StatusOK)
}

func (h *Handler) postEditSave(c *fiber.Ctx) error {
	s := h.session(c)
	err := s.editor.Save(c.Context())
	switch {
	case err == nil:
		return h.respond(c, s, fiber.StatusOK, fiber.Map{"saved": true})
	case errors.Is(err, editor.ErrNotEditing):
		return h.respond(c, s, fiber.StatusConflict, fiber.Map{"message": err.Error()})
	default:
		var ve *draft.ValidationError
		if errors.As(err, &ve) {
			return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{
				"message": ve.Message,
				"field":   ve.Field.String(),
			})
		}
		h.log.Warn("save failed", zap.Error(err))
		return h.respond(c, s, fiber.StatusBadGateway, fiber.Map{"message": err.Error()})
	}
}

func (h *Handler) postEditClose(c *fiber.Ctx) error {
	s := h.session(c)
	s.editor.Close()
	return h.respond(c, s, fiber.StatusOK, fiber.Map{"closed": true})
}

func (h *Handler) editResponse(c *fiber.Ctx, s *session, status int) error {
	id, buf, open := s.editor.Buffer()
	return h.respond(c, s, status, fiber.Map{
		"productId": id,
		"buffer":    draftView(buf),
		"open":      open,
	})
}

func (h *Handler) editError(c *fiber.Ctx, s *session, err error) error {
	if errors.Is(err, editor.ErrNotEditing) {
		return h.respond(c, s, fiber.StatusConflict, fiber.Map{"message": err.Error()})
	}
	return h.respond(c, s, fiber.StatusBadRequest, fiber.Map{"message": err.Error()})
}

type draftJSON struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discountedPrice"`
	Quantity        int     `json:"quantity"`
	Live            bool    `json:"live"`
	Stock           bool    `json:"stock"`
	ImageName       string  `json:"imageName,omitempty"`
	ImagePreview    string  `json:"imagePreview,omitempty"`
}

func draftView(d draft.Draft) draftJSON {
	v := draftJSON{
		Title:           d.Title,
		Description:     d.Description,
		Price:           d.Price,
		DiscountedPrice: d.DiscountedPrice,
		Quantity:        d.Quantity,
		Live:            d.Live,
		Stock:           d.Stock,
	}
	if d.Image != nil {
		v.ImageName = d.Image.Name
		v.ImagePreview = d.Image.Preview
	}
	return v
}
