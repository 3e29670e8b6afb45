package viewmodel

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/productcatalog/backend/internal/domain"
)

// Draft form field names, matching the form inputs
const (
	FieldID       = "id"
	FieldImageURL = "imageUrl"
	FieldName     = "name"
	FieldCount    = "count"
	FieldWidth    = "width"
	FieldHeight   = "height"
	FieldWeight   = "weight"
)

// DraftForm holds in-progress form values as typed by the user.
// It is shared by the add form and the in-place edit row.
type DraftForm struct {
	ID       string
	ImageURL string
	Name     string
	Count    string
	Width    string
	Height   string
	Weight   string
}

// draftFromProduct fills a form with a product's current values
func draftFromProduct(p domain.Product) DraftForm {
	return DraftForm{
		ID:       strconv.Itoa(p.ID),
		ImageURL: p.ImageURL,
		Name:     p.Name,
		Count:    strconv.Itoa(p.Count),
		Width:    strconv.Itoa(p.Size.Width),
		Height:   strconv.Itoa(p.Size.Height),
		Weight:   p.Weight,
	}
}

// set assigns a single field by its input name
func (d *DraftForm) set(field, value string) error {
	switch field {
	case FieldID:
		d.ID = value
	case FieldImageURL:
		d.ImageURL = value
	case FieldName:
		d.Name = value
	case FieldCount:
		d.Count = value
	case FieldWidth:
		d.Width = value
	case FieldHeight:
		d.Height = value
	case FieldWeight:
		d.Weight = value
	default:
		return errors.Wrapf(domain.ErrInvalidDraft, "unknown field %q", field)
	}
	return nil
}

// missingRequired lists the fields the add form insists on
func (d DraftForm) missingRequired() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{FieldName, d.Name},
		{FieldCount, d.Count},
		{FieldWeight, d.Weight},
		{FieldWidth, d.Width},
		{FieldHeight, d.Height},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// toInput converts the form to a create payload with numeric coercion.
// An empty id becomes 0; comments always start empty.
func (d DraftForm) toInput() (*domain.ProductInput, error) {
	if missing := d.missingRequired(); len(missing) > 0 {
		return nil, errors.Wrapf(domain.ErrInvalidDraft, "missing %s", strings.Join(missing, ", "))
	}

	id, err := parseOptionalInt(FieldID, d.ID)
	if err != nil {
		return nil, err
	}
	count, err := parseInt(FieldCount, d.Count)
	if err != nil {
		return nil, err
	}
	width, err := parseInt(FieldWidth, d.Width)
	if err != nil {
		return nil, err
	}
	height, err := parseInt(FieldHeight, d.Height)
	if err != nil {
		return nil, err
	}

	return &domain.ProductInput{
		ID:       &id,
		ImageURL: d.ImageURL,
		Name:     d.Name,
		Count:    &count,
		Size:     &domain.SizeInput{Width: &width, Height: &height},
		Weight:   d.Weight,
		Comments: []string{},
	}, nil
}

// toPatch converts the edit row to a full-field update
func (d DraftForm) toPatch() (*domain.ProductPatch, error) {
	id, err := parseOptionalInt(FieldID, d.ID)
	if err != nil {
		return nil, err
	}
	count, err := parseInt(FieldCount, d.Count)
	if err != nil {
		return nil, err
	}
	width, err := parseInt(FieldWidth, d.Width)
	if err != nil {
		return nil, err
	}
	height, err := parseInt(FieldHeight, d.Height)
	if err != nil {
		return nil, err
	}

	imageURL, name, weight := d.ImageURL, d.Name, d.Weight
	return &domain.ProductPatch{
		ID:       &id,
		ImageURL: &imageURL,
		Name:     &name,
		Count:    &count,
		Size:     &domain.Size{Width: width, Height: height},
		Weight:   &weight,
	}, nil
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Wrapf(domain.ErrInvalidDraft, "%s must be a whole number, got %q", field, value)
	}
	return n, nil
}

func parseOptionalInt(field, value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return parseInt(field, value)
}
