package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Observer receives one call per store operation. notFound and duplicate key
// outcomes are passed through as expected errors.
type Observer interface {
	ObserveStore(op, collection string, start time.Time, err error, expected ...error)
}

type Instrumented struct {
	next Store
	obs  Observer
}

// Instrument wraps s so that every call is reported to obs. The wrapper keeps
// the Indexer capability of s when it has one.
func Instrument(s Store, obs Observer) *Instrumented {
	return &Instrumented{next: s, obs: obs}
}

func (i *Instrumented) InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	start := time.Now()
	id, err := i.next.InsertOne(ctx, collection, doc)
	i.obs.ObserveStore("insert_one", collection, start, err, ErrDuplicateKey)
	return id, err
}

func (i *Instrumented) FindOne(ctx context.Context, collection string, filter bson.M, out any) error {
	start := time.Now()
	err := i.next.FindOne(ctx, collection, filter, out)
	i.obs.ObserveStore("find_one", collection, start, err, ErrNotFound)
	return err
}

func (i *Instrumented) FindMany(ctx context.Context, collection string, filter bson.M, limit int64, out any) error {
	start := time.Now()
	err := i.next.FindMany(ctx, collection, filter, limit, out)
	i.obs.ObserveStore("find_many", collection, start, err)
	return err
}

func (i *Instrumented) UpdateOne(ctx context.Context, collection string, filter bson.M, update bson.M) error {
	start := time.Now()
	err := i.next.UpdateOne(ctx, collection, filter, update)
	i.obs.ObserveStore("update_one", collection, start, err, ErrNotFound, ErrDuplicateKey)
	return err
}

func (i *Instrumented) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}

func (i *Instrumented) CollectionNames(ctx context.Context) ([]string, error) {
	return i.next.CollectionNames(ctx)
}

func (i *Instrumented) Name() string {
	return i.next.Name()
}

func (i *Instrumented) EnsureIndexes(ctx context.Context, indexes []Index) error {
	idx, ok := i.next.(Indexer)
	if !ok {
		return nil
	}
	return idx.EnsureIndexes(ctx, indexes)
}
