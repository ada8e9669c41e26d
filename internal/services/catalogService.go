package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arzan03/EduSphere/internal/models"
	"github.com/arzan03/EduSphere/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// Authorizer decides whether a token may create documents.
type Authorizer interface {
	AuthorizeWrite(ctx context.Context, token string) error
}

// Document is implemented by pointers to catalog entities.
type Document[T any] interface {
	*T
	// Prepare resets server-owned fields before insert.
	Prepare(now time.Time)
	// Normalize fills defaults on documents read back from the store.
	Normalize()
}

// Catalog serves one collection of publicly readable, token-gated writable
// documents.
type Catalog[T any, PT Document[T]] struct {
	store      store.Store
	auth       Authorizer
	collection string
	now        func() time.Time
}

func NewCatalog[T any, PT Document[T]](s store.Store, auth Authorizer, collection string) *Catalog[T, PT] {
	return &Catalog[T, PT]{
		store:      s,
		auth:       auth,
		collection: collection,
		now:        time.Now,
	}
}

type (
	CourseService  = Catalog[models.Course, *models.Course]
	ProductService = Catalog[models.Product, *models.Product]
)

func NewCourseService(s store.Store, auth Authorizer) *CourseService {
	return NewCatalog[models.Course](s, auth, models.CourseCollection)
}

func NewProductService(s store.Store, auth Authorizer) *ProductService {
	return NewCatalog[models.Product](s, auth, models.ProductCollection)
}

// List returns up to limit documents in store order. Limits above
// MaxListLimit are clamped.
func (c *Catalog[T, PT]) List(ctx context.Context, limit int) ([]T, error) {
	if limit < 1 {
		return nil, invalidField("limit", "min", "must be at least 1")
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var items []T
	if err := c.store.FindMany(ctx, c.collection, bson.M{}, int64(limit), &items); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.collection, err)
	}
	if items == nil {
		items = []T{}
	}
	for i := range items {
		PT(&items[i]).Normalize()
	}
	return items, nil
}

// Create validates doc before checking the token, so malformed input is
// rejected the same way for anonymous and logged-in callers.
func (c *Catalog[T, PT]) Create(ctx context.Context, token string, doc T) (T, error) {
	var zero T

	if err := validateStruct(doc); err != nil {
		return zero, err
	}
	if err := c.auth.AuthorizeWrite(ctx, token); err != nil {
		return zero, err
	}

	PT(&doc).Prepare(c.now().UTC())

	id, err := c.store.InsertOne(ctx, c.collection, doc)
	if err != nil {
		return zero, fmt.Errorf("insert %s: %w", c.collection, err)
	}

	var created T
	if err := c.store.FindOne(ctx, c.collection, bson.M{"_id": id}, &created); err != nil {
		return zero, fmt.Errorf("read back %s %s: %w", c.collection, id.Hex(), err)
	}
	PT(&created).Normalize()
	return created, nil
}

func (c *Catalog[T, PT]) Get(ctx context.Context, id string) (T, error) {
	var doc T

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return doc, ErrInvalidID
	}

	err = c.store.FindOne(ctx, c.collection, bson.M{"_id": oid}, &doc)
	if errors.Is(err, store.ErrNotFound) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("get %s %s: %w", c.collection, id, err)
	}
	PT(&doc).Normalize()
	return doc, nil
}
