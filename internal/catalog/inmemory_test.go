package catalog

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryCreateAndList(t *testing.T) {
	m := NewInMemory([]Category{{CategoryID: "c1", Title: "Electronics"}}, nil)

	id, err := m.CreateProduct(context.Background(), NewProduct{Title: "Lamp", Price: 50})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a generated product id")
	}

	page, err := m.ListProducts(context.Background(), 0, 10, "addedDate", "desc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].Title != "Lamp" {
		t.Fatalf("unexpected listing: %+v", page.Content)
	}
	if page.Content[0].ProductID != id {
		t.Fatalf("listing id %q does not match created id %q", page.Content[0].ProductID, id)
	}
}

func TestInMemoryCreateInUnknownCategory(t *testing.T) {
	m := NewInMemory(nil, nil)
	if _, err := m.CreateProductInCategory(context.Background(), NewProduct{Title: "Lamp"}, "nope"); !errors.Is(err, ErrNoSuchCategory) {
		t.Fatalf("expected ErrNoSuchCategory, got %v", err)
	}
}

func TestInMemoryUploadAndUpdate(t *testing.T) {
	m := NewInMemory(nil, []Product{{ProductID: "p1", Title: "Lamp"}})

	if err := m.UploadProductImage(context.Background(), "p1", "lamp.png", "image/png", []byte{1, 2}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if b, ok := m.Image("p1"); !ok || len(b) != 2 {
		t.Fatalf("expected stored image bytes")
	}
	if err := m.UploadProductImage(context.Background(), "nope", "x.png", "image/png", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := m.UpdateProduct(context.Background(), "p1", NewProduct{Title: "Floor lamp", Price: 60}); err != nil {
		t.Fatalf("update: %v", err)
	}
	page, _ := m.ListProducts(context.Background(), 0, 10, "title", "asc")
	if page.Content[0].Title != "Floor lamp" || page.Content[0].Price != 60 {
		t.Fatalf("update not applied: %+v", page.Content[0])
	}
	if page.Content[0].ImageName != "lamp.png" {
		t.Fatalf("update must not drop the image name, got %q", page.Content[0].ImageName)
	}
}

func TestInMemoryPaging(t *testing.T) {
	products := []Product{
		{ProductID: "a", Title: "A", AddedDate: "2026-01-01T00:00:00Z"},
		{ProductID: "b", Title: "B", AddedDate: "2026-01-02T00:00:00Z"},
		{ProductID: "c", Title: "C", AddedDate: "2026-01-03T00:00:00Z"},
	}
	m := NewInMemory(nil, products)

	page, _ := m.ListProducts(context.Background(), 0, 2, "addedDate", "desc")
	if len(page.Content) != 2 || page.Content[0].ProductID != "c" {
		t.Fatalf("expected newest-first page of two, got %+v", page.Content)
	}
	if page.LastPage {
		t.Fatalf("expected more pages")
	}

	page, _ = m.ListProducts(context.Background(), 2, 2, "addedDate", "desc")
	if len(page.Content) != 1 || page.Content[0].ProductID != "a" {
		t.Fatalf("unexpected second page: %+v", page.Content)
	}
	if !page.LastPage {
		t.Fatalf("expected last page")
	}
}
