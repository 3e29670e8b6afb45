package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/productcatalog/backend/internal/domain"
)

// setupStore starts a disposable MongoDB container and connects a Store to it
func setupStore(t *testing.T) *Store {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping MongoDB integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	uri, err := container.PortEndpoint(ctx, "27017/tcp", "mongodb")
	require.NoError(t, err)

	store, err := Connect(ctx, Options{
		URI:        uri,
		Database:   "catalog_test",
		Collection: "products",
		Timeout:    10 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})

	return store
}

func widget() *domain.Product {
	return &domain.Product{
		Name:   "Widget",
		Count:  10,
		Size:   domain.Size{Width: 2, Height: 3},
		Weight: "5g",
	}
}

func TestStore_CreateAndList(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, widget())
	require.NoError(t, err)
	assert.Len(t, created.RecordID, 24)
	assert.Equal(t, []string{}, created.Comments)

	products, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	got := products[0]
	assert.Equal(t, created.RecordID, got.RecordID)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 10, got.Count)
	assert.Equal(t, domain.Size{Width: 2, Height: 3}, got.Size)
	assert.Equal(t, "5g", got.Weight)
	assert.Equal(t, []string{}, got.Comments)
}

func TestStore_UpdateByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, widget())
	require.NoError(t, err)

	for _, count := range []int{20, 30} {
		c := count
		updated, err := store.UpdateByID(ctx, created.RecordID, &domain.ProductPatch{Count: &c})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, count, updated.Count)
	}

	comments := []string{"first", "second"}
	updated, err := store.UpdateByID(ctx, created.RecordID, domain.CommentsPatch(comments))
	require.NoError(t, err)
	assert.Equal(t, comments, updated.Comments)
	assert.Equal(t, 30, updated.Count)

	// Empty patch returns the current document
	current, err := store.UpdateByID(ctx, created.RecordID, &domain.ProductPatch{})
	require.NoError(t, err)
	assert.Equal(t, updated, current)
}

func TestStore_UpdateByID_NotFound(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	name := "ghost"
	for _, id := range []string{"000000000000000000000000", "not-an-object-id"} {
		updated, err := store.UpdateByID(ctx, id, &domain.ProductPatch{Name: &name})
		assert.NoError(t, err)
		assert.Nil(t, updated)
	}
}

func TestStore_DeleteByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, widget())
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, created.RecordID))
	assert.NoError(t, store.DeleteByID(ctx, created.RecordID))
	assert.NoError(t, store.DeleteByID(ctx, "garbage"))

	products, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}
