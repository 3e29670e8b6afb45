package domain

import "context"

// ProductRepository defines the persistence contract for products.
// UpdateByID returns (nil, nil) when no record matches; DeleteByID never
// reports a missing record.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	UpdateByID(ctx context.Context, recordID string, patch *ProductPatch) (*Product, error)
	DeleteByID(ctx context.Context, recordID string) error
}

// CatalogAPI defines the REST resource contract as consumed by clients
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, input *ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, recordID string, patch *ProductPatch) (*Product, error)
	DeleteProduct(ctx context.Context, recordID string) error
}
