package domain

import (
	"strings"

	"github.com/go-faster/errors"
)

// Size holds the physical dimensions of a product
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Product represents a catalog record as stored and served by the API
type Product struct {
	RecordID string   `json:"_id"`      // Store-assigned identity, used for update/delete
	ID       int      `json:"id"`       // User-supplied display id, not unique
	ImageURL string   `json:"imageUrl"`
	Name     string   `json:"name"`
	Count    int      `json:"count"`
	Size     Size     `json:"size"`
	Weight   string   `json:"weight"` // Free-form, unit embedded e.g. "500g"
	Comments []string `json:"comments"`
}

// Clone returns a deep copy of the product
func (p Product) Clone() Product {
	out := p
	out.Comments = append(make([]string, 0, len(p.Comments)), p.Comments...)
	return out
}

// SizeInput is the create-time form of Size with presence tracking
type SizeInput struct {
	Width  *int `json:"width"`
	Height *int `json:"height"`
}

// ProductInput is the create payload. Pointer fields distinguish "absent" from zero.
type ProductInput struct {
	ID       *int       `json:"id"`
	ImageURL string     `json:"imageUrl"`
	Name     string     `json:"name"`
	Count    *int       `json:"count"`
	Size     *SizeInput `json:"size"`
	Weight   string     `json:"weight"`
	Comments []string   `json:"comments"`
}

// Validate checks that every required product field is present.
// id and imageUrl are optional; they default to zero values.
func (in *ProductInput) Validate() error {
	if in == nil {
		return errors.Wrap(ErrInvalidProduct, "empty payload")
	}

	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.Count == nil {
		missing = append(missing, "count")
	}
	if strings.TrimSpace(in.Weight) == "" {
		missing = append(missing, "weight")
	}
	if in.Size == nil || in.Size.Width == nil {
		missing = append(missing, "size.width")
	}
	if in.Size == nil || in.Size.Height == nil {
		missing = append(missing, "size.height")
	}

	if len(missing) > 0 {
		return errors.Wrapf(ErrInvalidProduct, "missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ToProduct materializes a Product from a validated input
func (in *ProductInput) ToProduct() *Product {
	p := &Product{
		ImageURL: in.ImageURL,
		Name:     in.Name,
		Weight:   in.Weight,
		Comments: append([]string{}, in.Comments...),
	}
	if in.ID != nil {
		p.ID = *in.ID
	}
	if in.Count != nil {
		p.Count = *in.Count
	}
	if in.Size != nil {
		if in.Size.Width != nil {
			p.Size.Width = *in.Size.Width
		}
		if in.Size.Height != nil {
			p.Size.Height = *in.Size.Height
		}
	}
	return p
}

// ProductPatch is the update payload. Every supplied top-level field replaces
// the stored field as a whole; size is never deep-merged.
type ProductPatch struct {
	ID       *int      `json:"id,omitempty"`
	ImageURL *string   `json:"imageUrl,omitempty"`
	Name     *string   `json:"name,omitempty"`
	Count    *int      `json:"count,omitempty"`
	Size     *Size     `json:"size,omitempty"`
	Weight   *string   `json:"weight,omitempty"`
	Comments *[]string `json:"comments,omitempty"`
}

// IsEmpty reports whether the patch carries no fields
func (p *ProductPatch) IsEmpty() bool {
	return p == nil || (p.ID == nil && p.ImageURL == nil && p.Name == nil &&
		p.Count == nil && p.Size == nil && p.Weight == nil && p.Comments == nil)
}

// Apply writes the supplied fields onto product
func (p *ProductPatch) Apply(product *Product) {
	if p == nil || product == nil {
		return
	}
	if p.ID != nil {
		product.ID = *p.ID
	}
	if p.ImageURL != nil {
		product.ImageURL = *p.ImageURL
	}
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Count != nil {
		product.Count = *p.Count
	}
	if p.Size != nil {
		product.Size = *p.Size
	}
	if p.Weight != nil {
		product.Weight = *p.Weight
	}
	if p.Comments != nil {
		product.Comments = append([]string{}, (*p.Comments)...)
	}
}

// CommentsPatch builds a patch that replaces the whole comments sequence
func CommentsPatch(comments []string) *ProductPatch {
	c := append([]string{}, comments...)
	return &ProductPatch{Comments: &c}
}
