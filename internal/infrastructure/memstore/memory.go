package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/productcatalog/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory product repository.
// Records are listed in insertion order, mirroring a collection's natural order.
type MemoryStore struct {
	data  map[string]domain.Product
	order []string
	mutex sync.RWMutex
}

// NewMemoryStore creates a new in-memory product store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]domain.Product),
	}
}

// Create stores a copy of product under a freshly assigned record id
func (s *MemoryStore) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, domain.ErrInvalidProduct
	}

	stored := product.Clone()
	stored.RecordID = primitive.NewObjectID().Hex()

	s.mutex.Lock()
	s.data[stored.RecordID] = stored
	s.order = append(s.order, stored.RecordID)
	s.mutex.Unlock()

	out := stored.Clone()
	return &out, nil
}

// List returns every stored product in insertion order
func (s *MemoryStore) List(ctx context.Context) ([]domain.Product, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	products := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		products = append(products, s.data[id].Clone())
	}
	return products, nil
}

// UpdateByID replaces the supplied top-level fields and returns the updated
// record, or nil if no record matches
func (s *MemoryStore) UpdateByID(ctx context.Context, recordID string, patch *domain.ProductPatch) (*domain.Product, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored, exists := s.data[recordID]
	if !exists {
		return nil, nil
	}

	patch.Apply(&stored)
	s.data[recordID] = stored

	out := stored.Clone()
	return &out, nil
}

// DeleteByID removes a record if present
func (s *MemoryStore) DeleteByID(ctx context.Context, recordID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.data[recordID]; !exists {
		return nil
	}

	delete(s.data, recordID)
	for i, id := range s.order {
		if id == recordID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Size returns the current number of records (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}
