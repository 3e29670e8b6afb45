package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"

	"github.com/productcatalog/backend/internal/domain"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog domain.CatalogAPI
}

// NewHandler creates a new HTTP handler with catalog dependency.
// catalog can be nil, in which case product endpoints return 501.
func NewHandler(catalog domain.CatalogAPI) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "catalog-backend",
		"version": "1.0.0",
	})
}

// ListProducts handles GET /api/title
func (h *Handler) ListProducts(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /api/title/add
func (h *Handler) CreateProduct(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var input domain.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/title/update/:id.
// An unknown id answers 200 with a null body.
func (h *Handler) UpdateProduct(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var patch domain.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/title/delete/:id.
// The response is the same whether or not the record existed.
func (h *Handler) DeleteProduct(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ready reports whether the catalog dependency is configured
func (h *Handler) ready(c *gin.Context) bool {
	if h.catalog == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"message": "Product catalog not configured",
		})
		return false
	}
	return true
}

// handleError maps domain errors to HTTP responses
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidProduct), errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
