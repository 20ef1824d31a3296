package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"go.uber.org/zap"
)

// Client talks to the remote catalog REST service.
type Client struct {
	base    string
	timeout time.Duration
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		log:     log,
	}
}

// ImageURL returns the by-convention address of a product's image. The
// resource may not exist; callers fall back to a placeholder on 404.
func (c *Client) ImageURL(productID string) string {
	return c.base + "/products/image/" + productID
}

func (c *Client) ListCategories(ctx context.Context, offset, limit int) (CategoryPage, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	var page CategoryPage
	var code int
	err := gout.GET(c.base + "/categories").
		WithContext(ctx).
		SetQuery(gout.H{"pageNumber": offset, "pageSize": limit}).
		BindJSON(&page).
		Code(&code).
		Do()
	if err != nil {
		return CategoryPage{}, fmt.Errorf("list categories: %w", err)
	}
	if code != 200 {
		return CategoryPage{}, fmt.Errorf("list categories: catalog returned %d", code)
	}
	return page, nil
}

func (c *Client) ListProducts(ctx context.Context, offset, limit int, sortField, sortDir string) (ProductPage, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	var page ProductPage
	var code int
	err := gout.GET(c.base + "/products").
		WithContext(ctx).
		SetQuery(gout.H{
			"pageNumber": offset,
			"pageSize":   limit,
			"sortBy":     sortField,
			"sortDir":    sortDir,
		}).
		BindJSON(&page).
		Code(&code).
		Do()
	if err != nil {
		return ProductPage{}, fmt.Errorf("list products: %w", err)
	}
	if code != 200 {
		return ProductPage{}, fmt.Errorf("list products: catalog returned %d", code)
	}
	return page, nil
}

func (c *Client) CreateProduct(ctx context.Context, p NewProduct) (string, error) {
	return c.create(ctx, c.base+"/products", p)
}

func (c *Client) CreateProductInCategory(ctx context.Context, p NewProduct, categoryID string) (string, error) {
	return c.create(ctx, c.base+"/categories/"+categoryID+"/products", p)
}

func (c *Client) create(ctx context.Context, url string, p NewProduct) (string, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	var created Product
	var code int
	err := gout.POST(url).
		WithContext(ctx).
		SetJSON(p).
		BindJSON(&created).
		Code(&code).
		Do()
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}
	if code != 200 && code != 201 {
		return "", fmt.Errorf("create product: catalog returned %d", code)
	}
	if created.ProductID == "" {
		return "", fmt.Errorf("create product: catalog returned no productId")
	}
	c.log.Info("product created", zap.String("productId", created.ProductID))
	return created.ProductID, nil
}

func (c *Client) UploadProductImage(ctx context.Context, productID, filename, contentType string, data []byte) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	var code int
	err := gout.POST(c.base + "/products/image/" + productID).
		WithContext(ctx).
		SetForm(gout.H{
			"productImage": gout.FormType{
				FileName:    filename,
				ContentType: contentType,
				File:        gout.FormMem(data),
			},
		}).
		Code(&code).
		Do()
	if err != nil {
		return fmt.Errorf("upload product image: %w", err)
	}
	if code != 200 && code != 201 {
		return fmt.Errorf("upload product image: catalog returned %d", code)
	}
	c.log.Info("image uploaded", zap.String("productId", productID), zap.Int("bytes", len(data)))
	return nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, p NewProduct) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	var code int
	err := gout.PUT(c.base + "/products/" + productID).
		WithContext(ctx).
		SetJSON(p).
		Code(&code).
		Do()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if code == 404 {
		return ErrNotFound
	}
	if code != 200 {
		return fmt.Errorf("update product: catalog returned %d", code)
	}
	return nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}
