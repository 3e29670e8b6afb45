package usecase

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/productcatalog/backend/internal/domain"
)

// CatalogService fronts the product repository for the REST API.
// It holds no per-request state; each operation makes exactly one repository call.
type CatalogService struct {
	repo   domain.ProductRepository
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(repo domain.ProductRepository, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		repo:   repo,
		logger: logger.Named("catalog"),
	}
}

// CreateProduct validates input and stores a new product
func (s *CatalogService) CreateProduct(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	product, err := s.repo.Create(ctx, input.ToProduct())
	if err != nil {
		s.logger.Error("Error adding product", zap.Error(err))
		return nil, errors.Wrap(err, "create product")
	}

	s.logger.Debug("product created", zap.String("record_id", product.RecordID))
	return product, nil
}

// ListProducts returns every product in store order
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Error listing products", zap.Error(err))
		return nil, errors.Wrap(err, "list products")
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// UpdateProduct replaces the supplied fields of a product.
// A nil product with a nil error means no record matched.
func (s *CatalogService) UpdateProduct(ctx context.Context, recordID string, patch *domain.ProductPatch) (*domain.Product, error) {
	if strings.TrimSpace(recordID) == "" || patch == nil {
		return nil, domain.ErrInvalidRequest
	}

	product, err := s.repo.UpdateByID(ctx, recordID, patch)
	if err != nil {
		s.logger.Error("Error updating product", zap.String("record_id", recordID), zap.Error(err))
		return nil, errors.Wrap(err, "update product")
	}

	if product == nil {
		s.logger.Debug("update matched no product", zap.String("record_id", recordID))
	}
	return product, nil
}

// DeleteProduct removes a product; missing records are not an error
func (s *CatalogService) DeleteProduct(ctx context.Context, recordID string) error {
	if strings.TrimSpace(recordID) == "" {
		return domain.ErrInvalidRequest
	}

	if err := s.repo.DeleteByID(ctx, recordID); err != nil {
		s.logger.Error("Error deleting product", zap.String("record_id", recordID), zap.Error(err))
		return errors.Wrap(err, "delete product")
	}
	return nil
}
