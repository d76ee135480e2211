package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/helioretail/cartkit/internal/catalog"
)

// Template for the product created by AddProduct. The catalog's create
// endpoint returns a canned record, so the title gets a generated suffix
// to keep created lines distinguishable.
const (
	newProductTitle       = "New Product"
	newProductPrice       = 29.99
	newProductDescription = "A wonderful new product"
	newProductCategory    = "electronics"
	newProductImage       = "https://via.placeholder.com/300"
)

type catalogAPI interface {
	ListProducts(ctx context.Context, limit int) ([]catalog.Product, error)
	CreateProduct(ctx context.Context, input catalog.ProductInput) (catalog.Product, error)
}

// Service maps catalog products to cart items and orchestrates the
// initial-load and add-product workflows. Catalog failures propagate
// unchanged; there is no local recovery.
type Service struct {
	catalog      catalogAPI
	initialLimit int
}

// NewService builds the loader on top of the given catalog client.
func NewService(client catalogAPI, initialLimit int) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("catalog client required")
	}
	if initialLimit <= 0 {
		return nil, fmt.Errorf("initial limit must be positive, got %d", initialLimit)
	}
	return &Service{catalog: client, initialLimit: initialLimit}, nil
}

// LoadInitialItems fetches the configured batch of products and maps each
// to a cart item with quantity 1.
func (s *Service) LoadInitialItems(ctx context.Context) ([]Item, error) {
	products, err := s.catalog.ListProducts(ctx, s.initialLimit)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(products))
	for _, product := range products {
		items = append(items, mapProductToItem(product))
	}
	return items, nil
}

// AddProduct creates one product in the catalog and returns a new slice
// with the mapped item appended to existing. It never merges into an
// existing line: the upstream create endpoint always answers with the
// same underlying product, which made merge-by-title collapse every add
// into a single line.
func (s *Service) AddProduct(ctx context.Context, existing []Item) ([]Item, error) {
	product, err := s.catalog.CreateProduct(ctx, catalog.ProductInput{
		Title:       fmt.Sprintf("%s %s", newProductTitle, uuid.NewString()[:8]),
		Price:       newProductPrice,
		Description: newProductDescription,
		Category:    newProductCategory,
		Image:       newProductImage,
	})
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(existing), len(existing)+1)
	copy(items, existing)
	return append(items, mapProductToItem(product)), nil
}

// mapProductToItem drops description and category; every mapped item
// starts at quantity 1.
func mapProductToItem(product catalog.Product) Item {
	return Item{
		ID:       product.ID,
		Title:    product.Title,
		Price:    decimal.NewFromFloat(product.Price),
		Quantity: 1,
		Image:    product.Image,
	}
}
