package mongostore

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/productcatalog/backend/internal/domain"
)

// Document field names
const (
	fieldID       = "id"
	fieldImageURL = "imageUrl"
	fieldName     = "name"
	fieldCount    = "count"
	fieldSize     = "size"
	fieldWeight   = "weight"
	fieldComments = "comments"
)

type sizeDocument struct {
	Width  int `bson:"width"`
	Height int `bson:"height"`
}

// productDocument is the persisted layout of a product
type productDocument struct {
	RecordID primitive.ObjectID `bson:"_id,omitempty"`
	ID       int                `bson:"id"`
	ImageURL string             `bson:"imageUrl"`
	Name     string             `bson:"name"`
	Count    int                `bson:"count"`
	Size     sizeDocument       `bson:"size"`
	Weight   string             `bson:"weight"`
	Comments []string           `bson:"comments"`
}

// toDocument converts a domain product to its persisted layout.
// The record id is left for the caller to assign.
func toDocument(p *domain.Product) productDocument {
	return productDocument{
		ID:       p.ID,
		ImageURL: p.ImageURL,
		Name:     p.Name,
		Count:    p.Count,
		Size:     sizeDocument{Width: p.Size.Width, Height: p.Size.Height},
		Weight:   p.Weight,
		Comments: nonNil(p.Comments),
	}
}

// fromDocument converts a persisted document to the domain product
func fromDocument(doc *productDocument) *domain.Product {
	return &domain.Product{
		RecordID: doc.RecordID.Hex(),
		ID:       doc.ID,
		ImageURL: doc.ImageURL,
		Name:     doc.Name,
		Count:    doc.Count,
		Size:     domain.Size{Width: doc.Size.Width, Height: doc.Size.Height},
		Weight:   doc.Weight,
		Comments: nonNil(doc.Comments),
	}
}

// patchToSet builds the $set document for the supplied top-level fields
func patchToSet(patch *domain.ProductPatch) bson.D {
	set := bson.D{}
	if patch == nil {
		return set
	}

	if patch.ID != nil {
		set = append(set, bson.E{Key: fieldID, Value: *patch.ID})
	}
	if patch.ImageURL != nil {
		set = append(set, bson.E{Key: fieldImageURL, Value: *patch.ImageURL})
	}
	if patch.Name != nil {
		set = append(set, bson.E{Key: fieldName, Value: *patch.Name})
	}
	if patch.Count != nil {
		set = append(set, bson.E{Key: fieldCount, Value: *patch.Count})
	}
	if patch.Size != nil {
		set = append(set, bson.E{Key: fieldSize, Value: sizeDocument{Width: patch.Size.Width, Height: patch.Size.Height}})
	}
	if patch.Weight != nil {
		set = append(set, bson.E{Key: fieldWeight, Value: *patch.Weight})
	}
	if patch.Comments != nil {
		set = append(set, bson.E{Key: fieldComments, Value: nonNil(*patch.Comments)})
	}

	return set
}

func nonNil(comments []string) []string {
	return append(make([]string, 0, len(comments)), comments...)
}
