package ports

import (
	"context"

	"github.com/lojinha/catalog-api/internal/core/domain"
)

// ProductUpdate carries the replacement values for a wholesale update.
// Nil pointers are written as NULL: the PUT contract overwrites all three
// columns unconditionally, it is not a partial patch.
type ProductUpdate struct {
	Description *string
	Price       *float64
	Brand       *string
}

// ProductRepository defines persistence operations for catalog items.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	// FindByID returns domain.ErrProductNotFound when no row matches.
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	// Create inserts a new product. A duplicate id yields domain.ErrProductExists.
	Create(ctx context.Context, p *domain.Product) error
	// Update replaces descricao/valor/marca for the row matching id and
	// reports whether a row was affected.
	Update(ctx context.Context, id int, update ProductUpdate) (bool, error)
	// Delete removes the row matching id and reports whether one existed.
	Delete(ctx context.Context, id int) (bool, error)
}
