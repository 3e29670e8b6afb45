package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/productcatalog/backend/internal/domain"
	"github.com/productcatalog/backend/internal/infrastructure/memstore"
	"github.com/productcatalog/backend/internal/usecase"
	"github.com/productcatalog/backend/internal/viewmodel"
)

func loadedCatalog(t *testing.T, names ...string) *viewmodel.Catalog {
	t.Helper()
	ctx := context.Background()

	svc := usecase.NewCatalogService(memstore.NewMemoryStore(), zap.NewNop())
	for _, name := range names {
		count, width, height := 1, 2, 3
		_, err := svc.CreateProduct(ctx, &domain.ProductInput{
			Name:   name,
			Count:  &count,
			Size:   &domain.SizeInput{Width: &width, Height: &height},
			Weight: "1kg",
		})
		require.NoError(t, err)
	}

	catalog := viewmodel.NewCatalog(svc, zap.NewNop())
	require.NoError(t, catalog.Load(ctx))
	return catalog
}

func TestRender_GroupHeadingsAndRunningNumbers(t *testing.T) {
	names := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9"}
	catalog := loadedCatalog(t, names...)

	var out bytes.Buffer
	render(&out, catalog)
	text := out.String()

	// one heading per group of four, not per product
	assert.Equal(t, 3, strings.Count(text, "Product #"))
	assert.Contains(t, text, "Product #1\n  1. a1\n")
	assert.Contains(t, text, "Product #2\n  5. a5\n")
	assert.Contains(t, text, "Product #3\n  9. a9\n")
	assert.NotContains(t, text, "Product #4")

	for i, name := range names {
		assert.Contains(t, text, fmt.Sprintf("%3d. %s\n", i+1, name))
	}
}

func TestRender_Empty(t *testing.T) {
	var out bytes.Buffer
	render(&out, loadedCatalog(t))

	assert.Equal(t, "No products.\n", out.String())
}
