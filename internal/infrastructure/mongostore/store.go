package mongostore

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/productcatalog/backend/internal/domain"
)

// Options configures a MongoDB connection
type Options struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration // Per-operation timeout, zero means none
}

// Store is a MongoDB backed product repository
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

// Connect opens a client for opts and verifies it with a ping
func Connect(ctx context.Context, opts Options, logger *zap.Logger) (*Store, error) {
	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.Timeout > 0 {
		clientOpts.SetTimeout(opts.Timeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}

	store := New(client, opts.Database, opts.Collection, logger)
	if err := store.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return store, nil
}

// New wraps an existing client
func New(client *mongo.Client, database, collection string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.Named("mongostore"),
	}
}

// Ping checks connectivity with the primary
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.Wrap(err, "ping mongo")
	}
	return nil
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Create inserts a product and returns it with its assigned record id
func (s *Store) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, domain.ErrInvalidProduct
	}

	doc := toDocument(product)
	doc.RecordID = primitive.NewObjectID()

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		s.logger.Error("insert product failed", zap.Error(err))
		return nil, storeError(err, "insert product")
	}

	return fromDocument(&doc), nil
}

// List returns every product in natural collection order
func (s *Store) List(ctx context.Context) ([]domain.Product, error) {
	cursor, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		s.logger.Error("find products failed", zap.Error(err))
		return nil, storeError(err, "find products")
	}

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		s.logger.Error("decode products failed", zap.Error(err))
		return nil, storeError(err, "decode products")
	}

	products := make([]domain.Product, 0, len(docs))
	for i := range docs {
		products = append(products, *fromDocument(&docs[i]))
	}
	return products, nil
}

// UpdateByID sets the supplied top-level fields and returns the updated
// document, or nil when the id matches nothing
func (s *Store) UpdateByID(ctx context.Context, recordID string, patch *domain.ProductPatch) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		s.logger.Debug("update with malformed record id", zap.String("record_id", recordID))
		return nil, nil
	}

	filter := bson.D{{Key: "_id", Value: oid}}

	var doc productDocument
	set := patchToSet(patch)
	if len(set) == 0 {
		err = s.collection.FindOne(ctx, filter).Decode(&doc)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = s.collection.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("update product failed", zap.String("record_id", recordID), zap.Error(err))
		return nil, storeError(err, "update product")
	}

	return fromDocument(&doc), nil
}

// DeleteByID removes the product with recordID if it exists
func (s *Store) DeleteByID(ctx context.Context, recordID string) error {
	oid, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		s.logger.Debug("delete with malformed record id", zap.String("record_id", recordID))
		return nil
	}

	if _, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		s.logger.Error("delete product failed", zap.String("record_id", recordID), zap.Error(err))
		return storeError(err, "delete product")
	}
	return nil
}

// storeError tags a driver error as a store failure
func storeError(err error, op string) error {
	return errors.Wrapf(domain.ErrStoreFailure, "%s: %v", op, err)
}
