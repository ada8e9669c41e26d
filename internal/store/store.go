// Package store is the document store boundary used by every service.
// Collections are addressed by name and documents are any value the BSON
// codec can marshal.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

type Store interface {
	InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error)
	// FindOne decodes the first match into out or returns ErrNotFound.
	FindOne(ctx context.Context, collection string, filter bson.M, out any) error
	// FindMany decodes up to limit matches into out, a pointer to a slice.
	// A limit of zero means no limit.
	FindMany(ctx context.Context, collection string, filter bson.M, limit int64, out any) error
	// UpdateOne applies a $set update to the first match or returns ErrNotFound.
	UpdateOne(ctx context.Context, collection string, filter bson.M, update bson.M) error
	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)
	Name() string
}

type Index struct {
	Collection string
	Field      string
	Unique     bool
	Sparse     bool
}

type Indexer interface {
	EnsureIndexes(ctx context.Context, indexes []Index) error
}
