package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	res, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", collection, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: unexpected id type %T", collection, res.InsertedID)
	}
	return id, nil
}

func (m *Mongo) FindOne(ctx context.Context, collection string, filter bson.M, out any) error {
	err := m.db.Collection(collection).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find in %s: %w", collection, err)
	}
	return nil
}

func (m *Mongo) FindMany(ctx context.Context, collection string, filter bson.M, limit int64, out any) error {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := m.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("find in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (m *Mongo) UpdateOne(ctx context.Context, collection string, filter bson.M, update bson.M) error {
	res, err := m.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("update %s: %w", collection, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, nil)
}

func (m *Mongo) CollectionNames(ctx context.Context) ([]string, error) {
	return m.db.ListCollectionNames(ctx, bson.D{})
}

func (m *Mongo) Name() string {
	return m.db.Name()
}

func (m *Mongo) EnsureIndexes(ctx context.Context, indexes []Index) error {
	for _, idx := range indexes {
		opts := options.Index().SetUnique(idx.Unique)
		if idx.Sparse {
			opts.SetSparse(true)
		}

		model := mongo.IndexModel{
			Keys:    bson.D{{Key: idx.Field, Value: 1}},
			Options: opts,
		}
		if _, err := m.db.Collection(idx.Collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index %s.%s: %w", idx.Collection, idx.Field, err)
		}
	}
	return nil
}
