package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/lojinha/catalog-api/internal/core/domain"
	"github.com/lojinha/catalog-api/internal/core/ports"
)

// CatalogService implements the product CRUD operations.
type CatalogService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProduct rejects an id that is already taken. The existence check and
// the insert are deliberately not wrapped in a transaction, mirroring the
// legacy behaviour; concurrent creates of the same id can race past the check
// and fail on the primary key instead.
func (s *CatalogService) CreateProduct(ctx context.Context, input ports.CreateProductInput) error {
	_, err := s.repo.FindByID(ctx, input.ID)
	if err == nil {
		return domain.ErrProductExists
	}
	if !errors.Is(err, domain.ErrProductNotFound) {
		return err
	}

	p := &domain.Product{
		ID:          input.ID,
		Description: input.Description,
		Price:       input.Price,
		Brand:       input.Brand,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	s.logger.Info().Int("product_id", p.ID).Msg("product created")
	return nil
}

// UpdateProduct overwrites descricao/valor/marca wholesale. Fields absent
// from the request become NULL.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, input ports.UpdateProductInput) error {
	updated, err := s.repo.Update(ctx, id, ports.ProductUpdate{
		Description: input.Description,
		Price:       input.Price,
		Brand:       input.Brand,
	})
	if err != nil {
		return err
	}
	if !updated {
		return domain.ErrProductNotFound
	}

	s.logger.Info().Int("product_id", id).Msg("product updated")
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrProductNotFound
	}

	s.logger.Info().Int("product_id", id).Msg("product deleted")
	return nil
}
