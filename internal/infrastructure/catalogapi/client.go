package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/productcatalog/backend/internal/domain"
)

const (
	pathList   = "/api/title"
	pathAdd    = "/api/title/add"
	pathUpdate = "/api/title/update/"
	pathDelete = "/api/title/delete/"
)

// Client talks to the catalog REST API. Every call is a single request;
// there are no retries.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new catalog API client.
// ratePerSec <= 0 disables throttling.
func NewClient(baseURL string, ratePerSec float64, burst int, logger *zap.Logger) *Client {
	limit := rate.Inf
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
	}
	if burst < 1 {
		burst = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient:  &http.Client{},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		rateLimiter: rate.NewLimiter(limit, burst),
		logger:      logger.Named("catalogapi"),
	}
}

// ListProducts fetches every product in store order
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, pathList, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// CreateProduct submits a new product and returns the stored record
func (c *Client) CreateProduct(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPost, pathAdd, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct sends a patch and returns the updated record, or nil when
// the server no longer has a record with that id
func (c *Client) UpdateProduct(ctx context.Context, recordID string, patch *domain.ProductPatch) (*domain.Product, error) {
	var product *domain.Product
	if err := c.do(ctx, http.MethodPut, pathUpdate+url.PathEscape(recordID), patch, &product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product; deleting a missing record succeeds
func (c *Client) DeleteProduct(ctx context.Context, recordID string) error {
	var resp struct {
		Message string `json:"message"`
	}
	return c.do(ctx, http.MethodDelete, pathDelete+url.PathEscape(recordID), nil, &resp)
}

// do executes a JSON request and decodes the response body into out
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(domain.ErrAPIFailure, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(domain.ErrAPIFailure, "read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("API error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data),
		)
		return errors.Wrapf(domain.ErrAPIFailure, "%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
