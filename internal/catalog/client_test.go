package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 0, zap.NewNop()), srv
}

func TestClientListCategories(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/categories" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("pageNumber") != "0" || q.Get("pageSize") != "50" {
			t.Fatalf("unexpected paging params: %v", q)
		}
		json.NewEncoder(w).Encode(CategoryPage{
			Content:       []Category{{CategoryID: "c1", Title: "Electronics"}},
			TotalElements: 1,
			LastPage:      true,
		})
	}))

	page, err := c.ListCategories(context.Background(), 0, 50)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].CategoryID != "c1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestClientListProducts(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("sortBy") != "addedDate" || q.Get("sortDir") != "desc" {
			t.Fatalf("unexpected sort params: %v", q)
		}
		json.NewEncoder(w).Encode(ProductPage{Content: []Product{{ProductID: "p1", Title: "Lamp"}}})
	}))

	page, err := c.ListProducts(context.Background(), 0, 1000, "addedDate", "desc")
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].Title != "Lamp" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestClientCreateProduct(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/products" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var p NewProduct
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if p.Title != "Lamp" || p.Price != 50 {
			t.Fatalf("unexpected payload: %+v", p)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Product{ProductID: "p-42", Title: p.Title})
	}))

	id, err := c.CreateProduct(context.Background(), NewProduct{Title: "Lamp", Price: 50, DiscountedPrice: 40})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != "p-42" {
		t.Fatalf("expected productId p-42, got %q", id)
	}
}

func TestClientCreateProductInCategory(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/categories/cat-7/products" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Product{ProductID: "p-7"})
	}))

	id, err := c.CreateProductInCategory(context.Background(), NewProduct{Title: "Lamp"}, "cat-7")
	if err != nil {
		t.Fatalf("create in category: %v", err)
	}
	if id != "p-7" {
		t.Fatalf("expected p-7, got %q", id)
	}
}

func TestClientCreateProductFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	if _, err := c.CreateProduct(context.Background(), NewProduct{Title: "Lamp"}); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestClientUploadProductImage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/products/image/p-42" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("productImage")
		if err != nil {
			t.Fatalf("expected multipart field productImage: %v", err)
		}
		defer file.Close()
		if header.Filename != "lamp.png" {
			t.Fatalf("unexpected filename %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/png" {
			t.Fatalf("unexpected content type %q", ct)
		}
		b, _ := io.ReadAll(file)
		if len(b) != len(pngBytes) {
			t.Fatalf("expected %d image bytes, got %d", len(pngBytes), len(b))
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := c.UploadProductImage(context.Background(), "p-42", "lamp.png", "image/png", pngBytes); err != nil {
		t.Fatalf("upload: %v", err)
	}
}

func TestClientUpdateProduct(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/p-42":
			if r.Method != "PUT" {
				t.Fatalf("expected PUT, got %s", r.Method)
			}
			var p NewProduct
			json.NewDecoder(r.Body).Decode(&p)
			if p.Title != "Floor lamp" {
				t.Fatalf("unexpected payload: %+v", p)
			}
			w.WriteHeader(http.StatusOK)
		case "/products/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	if err := c.UpdateProduct(context.Background(), "p-42", NewProduct{Title: "Floor lamp"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := c.UpdateProduct(context.Background(), "missing", NewProduct{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing product, got %v", err)
	}
}
