package catalog

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrNoSuchCategory = errors.New("category not found")
)

// Product is a product record as the remote catalog service returns it.
// JSON tags follow the camelCase convention used by the catalog API.
type Product struct {
	ProductID       string  `json:"productId"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discountedPrice"`
	Quantity        int     `json:"quantity"`
	Live            bool    `json:"live"`
	Stock           bool    `json:"stock"`
	ImageName       string  `json:"productImageName,omitempty"`
	AddedDate       string  `json:"addedDate,omitempty"`
}

// NewProduct is the payload for create and update calls. The catalog service
// assigns the identifier and the image name server-side.
type NewProduct struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discountedPrice"`
	Quantity        int     `json:"quantity"`
	Live            bool    `json:"live"`
	Stock           bool    `json:"stock"`
}

type Category struct {
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
}

// ProductPage is the paged envelope the catalog API wraps listings in.
type ProductPage struct {
	Content       []Product `json:"content"`
	TotalElements int       `json:"totalElements"`
	LastPage      bool      `json:"lastPage"`
}

type CategoryPage struct {
	Content       []Category `json:"content"`
	TotalElements int        `json:"totalElements"`
	LastPage      bool       `json:"lastPage"`
}

// Service is the collaborator boundary of the console: everything the admin
// workflows need from the remote catalog.
type Service interface {
	ListCategories(ctx context.Context, offset, limit int) (CategoryPage, error)
	ListProducts(ctx context.Context, offset, limit int, sortField, sortDir string) (ProductPage, error)
	// CreateProduct creates an uncategorized product and returns its identifier.
	CreateProduct(ctx context.Context, p NewProduct) (string, error)
	CreateProductInCategory(ctx context.Context, p NewProduct, categoryID string) (string, error)
	UploadProductImage(ctx context.Context, productID, filename, contentType string, data []byte) error
	UpdateProduct(ctx context.Context, productID string, p NewProduct) error
}
