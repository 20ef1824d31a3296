package console

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wichananm65/shop-admin-console/internal/catalog"
	"github.com/wichananm65/shop-admin-console/internal/draft"
	"github.com/wichananm65/shop-admin-console/internal/editor"
	"github.com/wichananm65/shop-admin-console/internal/notify"
)

const sessionCookie = "admin_session"

// session is one operator's console state: their create workflow, their edit
// workflow, the pending notices, and the last loaded product collection.
// Workflow state is owned by the session and never shared between operators.
type session struct {
	workflow *draft.Workflow
	editor   *editor.Editor
	notices  *notify.Recorder

	mu       sync.Mutex
	products []catalog.Product
}

func (s *session) setProducts(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

func (s *session) findProduct(id string) (catalog.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ProductID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

type sessionStore struct {
	mu   sync.Mutex
	byID map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{byID: map[string]*session{}}
}

func (st *sessionStore) lookup(id string) (*session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.byID[id]
	return s, ok
}

func (st *sessionStore) put(id string, s *session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.byID[id] = s
}

// session returns the operator's session, creating it (and the cookie) on
// first contact.
func (h *Handler) session(c *fiber.Ctx) *session {
	id := c.Cookies(sessionCookie)
	if id != "" {
		if s, ok := h.store.lookup(id); ok {
			return s
		}
	}
	if id == "" {
		id = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    id,
			HTTPOnly: true,
		})
	}

	s := &session{notices: notify.NewRecorder()}
	// notices reach the operator via the response and the server log
	n := notify.Tee(s.notices, notify.NewLogNotifier(h.log))
	s.workflow = draft.NewWorkflow(h.svc, n)
	s.editor = editor.New(h.svc, n, func() {
		// reload the collection the edit came from so the table reflects
		// the saved changes
		h.reloadProducts(context.Background(), s)
	})
	h.store.put(id, s)
	return s
}
