package ports

import (
	"context"

	"github.com/lojinha/catalog-api/internal/core/domain"
)

// CreateProductInput carries the data for a new catalog item. The id comes
// from the caller, not from the database.
type CreateProductInput struct {
	ID          int
	Description string
	Price       float64
	Brand       string
}

// UpdateProductInput carries the replacement field values for a wholesale
// update. Absent request fields stay nil and end up as NULL columns.
type UpdateProductInput struct {
	Description *string
	Price       *float64
	Brand       *string
}

// CatalogService implements the catalog CRUD operations.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) error
	UpdateProduct(ctx context.Context, id int, input UpdateProductInput) error
	DeleteProduct(ctx context.Context, id int) error
}
