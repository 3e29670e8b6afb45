package catalogapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productcatalog/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:5000/", 0, 0, nil)

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:5000", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.NotNil(t, client.logger)
}

func TestListProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/title", r.URL.Path)

		products := []domain.Product{
			{RecordID: "a1", Name: "Widget", Count: 3, Comments: []string{}},
			{RecordID: "b2", Name: "Gadget", Count: 1, Comments: []string{"ok"}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, 1, nil)

	products, err := client.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a1", products[0].RecordID)
	assert.Equal(t, []string{"ok"}, products[1].Comments)
}

func TestListProducts_NullBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer server.Close()

	products, err := NewClient(server.URL, 0, 1, nil).ListProducts(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCreateProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/title/add", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var input domain.ProductInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "Widget", input.Name)
		require.NotNil(t, input.Count)
		assert.Equal(t, 10, *input.Count)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Product{
			RecordID: "new-id",
			Name:     input.Name,
			Count:    *input.Count,
			Comments: []string{},
		})
	}))
	defer server.Close()

	count := 10
	product, err := NewClient(server.URL, 0, 1, nil).CreateProduct(context.Background(), &domain.ProductInput{
		Name:  "Widget",
		Count: &count,
	})

	require.NoError(t, err)
	assert.Equal(t, "new-id", product.RecordID)
	assert.Equal(t, 10, product.Count)
}

func TestCreateProduct_ServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"Server error"}`))
	}))
	defer server.Close()

	product, err := NewClient(server.URL, 0, 1, nil).CreateProduct(context.Background(), &domain.ProductInput{})

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domain.ErrAPIFailure)
	assert.Equal(t, 1, attempts) // Never retried
}

func TestUpdateProduct(t *testing.T) {
	t.Run("returns updated record", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/title/update/abc123", r.URL.Path)

			var patch domain.ProductPatch
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
			require.NotNil(t, patch.Comments)
			assert.Nil(t, patch.Name)

			json.NewEncoder(w).Encode(domain.Product{RecordID: "abc123", Comments: *patch.Comments})
		}))
		defer server.Close()

		product, err := NewClient(server.URL, 0, 1, nil).UpdateProduct(
			context.Background(), "abc123", domain.CommentsPatch([]string{"hello"}))

		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, []string{"hello"}, product.Comments)
	})

	t.Run("null body means not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("null"))
		}))
		defer server.Close()

		product, err := NewClient(server.URL, 0, 1, nil).UpdateProduct(
			context.Background(), "gone", &domain.ProductPatch{})

		assert.NoError(t, err)
		assert.Nil(t, product)
	})
}

func TestDeleteProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/title/delete/abc123", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "Product deleted"})
	}))
	defer server.Close()

	err := NewClient(server.URL, 0, 1, nil).DeleteProduct(context.Background(), "abc123")

	assert.NoError(t, err)
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	products, err := NewClient(server.URL, 0, 1, nil).ListProducts(context.Background())

	assert.Nil(t, products)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	products, err := NewClient(server.URL, 0, 1, nil).ListProducts(ctx)

	assert.Nil(t, products)
	assert.ErrorIs(t, err, domain.ErrAPIFailure)
}

func TestClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	// One token, refilled every 10s: the second call cannot get a token before the deadline
	client := NewClient(server.URL, 0.1, 1, nil)

	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.ListProducts(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}
