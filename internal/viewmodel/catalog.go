package viewmodel

import (
	"context"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/productcatalog/backend/internal/domain"
)

// Catalog is the client-side model behind the product page.
// It mirrors the server's product list and tracks the transient UI state
// (edit row, delete confirmation, add form, comment drafts, sort order).
//
// Mutations call the API first and patch the mirror only on success.
// The lock is never held across an API call, so overlapping actions
// apply in the order they complete.
type Catalog struct {
	api    domain.CatalogAPI
	logger *zap.Logger
	locale language.Tag

	mu             sync.Mutex
	products       []domain.Product
	editing        string
	deleting       string
	draft          DraftForm
	addOpen        bool
	commentDrafts  map[string]string
	commentVisible map[string]bool
	sortMethod     SortMethod
}

// NewCatalog creates an empty catalog model backed by api
func NewCatalog(api domain.CatalogAPI, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		api:            api,
		logger:         logger,
		locale:         language.English,
		products:       []domain.Product{},
		commentDrafts:  make(map[string]string),
		commentVisible: make(map[string]bool),
		sortMethod:     SortAlphabetical,
	}
}

// Load replaces the mirror with the server's current list
func (c *Catalog) Load(ctx context.Context) error {
	products, err := c.api.ListProducts(ctx)
	if err != nil {
		c.logger.Error("Failed to load products", zap.Error(err))
		return errors.Wrap(err, "load products")
	}

	mirror := make([]domain.Product, 0, len(products))
	for _, p := range products {
		mirror = append(mirror, p.Clone())
	}

	c.mu.Lock()
	c.products = mirror
	c.mu.Unlock()

	c.logger.Debug("Loaded products", zap.Int("count", len(mirror)))
	return nil
}

// Refresh reloads the mirror to drop any divergence from the server
func (c *Catalog) Refresh(ctx context.Context) error {
	return c.Load(ctx)
}

// Products returns a copy of the mirror in server order
func (c *Catalog) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p.Clone())
	}
	return out
}

// Product returns a copy of the mirrored record with the given id
func (c *Catalog) Product(recordID string) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(recordID); i >= 0 {
		return c.products[i].Clone(), true
	}
	return domain.Product{}, false
}

// Editing returns the record id of the row being edited, or ""
func (c *Catalog) Editing() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

// Deleting returns the record id awaiting delete confirmation, or ""
func (c *Catalog) Deleting() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting
}

// Draft returns the current form values
func (c *Catalog) Draft() DraftForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// BeginEdit opens the edit row for a product, discarding any other edit
func (c *Catalog) BeginEdit(recordID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(recordID)
	if i < 0 {
		return errors.Wrapf(domain.ErrProductNotFound, "edit %s", recordID)
	}

	c.editing = recordID
	c.draft = draftFromProduct(c.products[i])
	return nil
}

// CancelEdit closes the edit row without saving
func (c *Catalog) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.editing = ""
	c.draft = DraftForm{}
}

// SetDraftField updates one form value
func (c *Catalog) SetDraftField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.set(field, value)
}

// SaveEdit sends the edit row to the server and merges the result.
// A record deleted elsewhere comes back as nil; the edit is then dropped.
func (c *Catalog) SaveEdit(ctx context.Context) error {
	c.mu.Lock()
	recordID := c.editing
	draft := c.draft
	c.mu.Unlock()

	if recordID == "" {
		return errors.Wrap(domain.ErrInvalidRequest, "no product is being edited")
	}

	patch, err := draft.toPatch()
	if err != nil {
		return err
	}

	updated, err := c.api.UpdateProduct(ctx, recordID, patch)
	if err != nil {
		c.logger.Error("Failed to save product",
			zap.String("record_id", recordID),
			zap.Error(err),
		)
		return errors.Wrap(err, "save product")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if updated != nil {
		c.merge(*updated)
	} else {
		c.logger.Warn("Edited product no longer exists", zap.String("record_id", recordID))
	}
	if c.editing == recordID {
		c.editing = ""
		c.draft = DraftForm{}
	}
	return nil
}

// RequestDelete marks a product for delete confirmation
func (c *Catalog) RequestDelete(recordID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleting = recordID
}

// CancelDelete dismisses the delete confirmation
func (c *Catalog) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleting = ""
}

// ConfirmDelete deletes the pending product on the server, then locally
func (c *Catalog) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	recordID := c.deleting
	c.mu.Unlock()

	if recordID == "" {
		return errors.Wrap(domain.ErrInvalidRequest, "no product is pending deletion")
	}

	if err := c.api.DeleteProduct(ctx, recordID); err != nil {
		c.logger.Error("Failed to delete product",
			zap.String("record_id", recordID),
			zap.Error(err),
		)
		return errors.Wrap(err, "delete product")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(recordID); i >= 0 {
		c.products = append(c.products[:i], c.products[i+1:]...)
	}
	if c.deleting == recordID {
		c.deleting = ""
	}
	if c.editing == recordID {
		c.editing = ""
		c.draft = DraftForm{}
	}
	delete(c.commentDrafts, recordID)
	delete(c.commentVisible, recordID)
	return nil
}

// SetCommentDraft stores the unsent comment text for a product
func (c *Catalog) SetCommentDraft(recordID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commentDrafts[recordID] = text
}

// CommentDraft returns the unsent comment text for a product
func (c *Catalog) CommentDraft(recordID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commentDrafts[recordID]
}

// ToggleComments flips a product's comment list visibility
func (c *Catalog) ToggleComments(recordID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commentVisible[recordID] = !c.commentVisible[recordID]
}

// CommentsVisible reports whether a product's comments are shown
func (c *Catalog) CommentsVisible(recordID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commentVisible[recordID]
}

// AddComment appends the product's comment draft and saves the whole list
func (c *Catalog) AddComment(ctx context.Context, recordID string) error {
	c.mu.Lock()
	text := strings.TrimSpace(c.commentDrafts[recordID])
	i := c.indexOf(recordID)
	var comments []string
	if i >= 0 {
		comments = append(comments, c.products[i].Comments...)
	}
	c.mu.Unlock()

	if text == "" {
		return domain.ErrEmptyComment
	}
	if i < 0 {
		return errors.Wrapf(domain.ErrProductNotFound, "comment on %s", recordID)
	}

	if err := c.saveComments(ctx, recordID, append(comments, text)); err != nil {
		return errors.Wrap(err, "add comment")
	}

	c.mu.Lock()
	delete(c.commentDrafts, recordID)
	c.mu.Unlock()
	return nil
}

// DeleteComment removes the comment at index and saves the whole list
func (c *Catalog) DeleteComment(ctx context.Context, recordID string, index int) error {
	c.mu.Lock()
	i := c.indexOf(recordID)
	var comments []string
	if i >= 0 {
		comments = append(comments, c.products[i].Comments...)
	}
	c.mu.Unlock()

	if i < 0 {
		return errors.Wrapf(domain.ErrProductNotFound, "comment on %s", recordID)
	}
	if index < 0 || index >= len(comments) {
		return errors.Wrapf(domain.ErrCommentIndex, "index %d of %d", index, len(comments))
	}

	remaining := make([]string, 0, len(comments)-1)
	remaining = append(remaining, comments[:index]...)
	remaining = append(remaining, comments[index+1:]...)

	if err := c.saveComments(ctx, recordID, remaining); err != nil {
		return errors.Wrap(err, "delete comment")
	}
	return nil
}

func (c *Catalog) saveComments(ctx context.Context, recordID string, comments []string) error {
	updated, err := c.api.UpdateProduct(ctx, recordID, domain.CommentsPatch(comments))
	if err != nil {
		c.logger.Error("Failed to save comments",
			zap.String("record_id", recordID),
			zap.Error(err),
		)
		return err
	}
	if updated == nil {
		c.logger.Warn("Commented product no longer exists", zap.String("record_id", recordID))
		return nil
	}

	c.mu.Lock()
	c.merge(*updated)
	c.mu.Unlock()
	return nil
}

// OpenAddForm shows the add form with an empty draft.
// The draft is shared with the edit row, so any open edit is dropped.
func (c *Catalog) OpenAddForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = DraftForm{}
	c.editing = ""
	c.addOpen = true
}

// CloseAddForm hides the add form, keeping the draft
func (c *Catalog) CloseAddForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addOpen = false
}

// AddFormOpen reports whether the add form is shown
func (c *Catalog) AddFormOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addOpen
}

// SubmitAdd creates a product from the draft. On success the new record is
// appended, the draft reset and the form closed; on failure nothing changes.
func (c *Catalog) SubmitAdd(ctx context.Context) (*domain.Product, error) {
	c.mu.Lock()
	draft := c.draft
	c.mu.Unlock()

	input, err := draft.toInput()
	if err != nil {
		return nil, err
	}

	created, err := c.api.CreateProduct(ctx, input)
	if err != nil {
		c.logger.Error("Failed to add product",
			zap.String("name", input.Name),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "add product")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = append(c.products, created.Clone())
	c.draft = DraftForm{}
	c.addOpen = false

	out := created.Clone()
	return &out, nil
}

// SetSortMethod changes the display ordering
func (c *Catalog) SetSortMethod(method string) error {
	m, err := ParseSortMethod(method)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortMethod = m
	return nil
}

// SortMethod returns the current display ordering
func (c *Catalog) SortMethod() SortMethod {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortMethod
}

// Sorted returns the mirror ordered by the current sort method
func (c *Catalog) Sorted() []domain.Product {
	c.mu.Lock()
	method := c.sortMethod
	c.mu.Unlock()

	return SortProducts(c.Products(), method, c.locale)
}

// Chunks returns the sorted products in display groups
func (c *Catalog) Chunks() [][]domain.Product {
	return Chunk(c.Sorted(), ChunkSize)
}

// merge replaces the mirrored record with the server's copy; caller holds mu
func (c *Catalog) merge(p domain.Product) {
	if i := c.indexOf(p.RecordID); i >= 0 {
		c.products[i] = p.Clone()
	}
}

// indexOf finds a record in the mirror; caller holds mu
func (c *Catalog) indexOf(recordID string) int {
	for i := range c.products {
		if c.products[i].RecordID == recordID {
			return i
		}
	}
	return -1
}
