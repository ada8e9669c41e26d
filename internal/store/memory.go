package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is a process-local Store. Documents are kept as bson.M after a BSON
// round trip so decoding behaves the same as against MongoDB. Filters match
// on top-level field equality only; updates support $set only.
type Memory struct {
	mu      sync.RWMutex
	name    string
	data    map[string][]bson.M
	uniques map[string][]string
}

func NewMemory(name string) *Memory {
	return &Memory{
		name:    name,
		data:    make(map[string][]bson.M),
		uniques: make(map[string][]string),
	}
}

func (m *Memory) InsertOne(_ context.Context, collection string, doc any) (primitive.ObjectID, error) {
	row, err := toM(doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", collection, err)
	}

	id, ok := row["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		row["_id"] = id
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.data[collection] {
		if existing["_id"] == id {
			return primitive.NilObjectID, fmt.Errorf("%w: _id %s", ErrDuplicateKey, id.Hex())
		}
	}
	if err := m.checkUnique(collection, row, -1); err != nil {
		return primitive.NilObjectID, err
	}

	m.data[collection] = append(m.data[collection], row)
	return id, nil
}

func (m *Memory) FindOne(_ context.Context, collection string, filter bson.M, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, row := range m.data[collection] {
		if matches(row, filter) {
			return decode(row, out)
		}
	}
	return ErrNotFound
}

func (m *Memory) FindMany(_ context.Context, collection string, filter bson.M, limit int64, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("find in %s: out must be a pointer to a slice, got %T", collection, out)
	}
	elemType := rv.Elem().Type().Elem()
	result := reflect.MakeSlice(rv.Elem().Type(), 0, 0)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, row := range m.data[collection] {
		if limit > 0 && int64(result.Len()) >= limit {
			break
		}
		if !matches(row, filter) {
			continue
		}

		item := reflect.New(elemType)
		if err := decode(row, item.Interface()); err != nil {
			return fmt.Errorf("decode %s: %w", collection, err)
		}
		result = reflect.Append(result, item.Elem())
	}

	rv.Elem().Set(result)
	return nil
}

func (m *Memory) UpdateOne(_ context.Context, collection string, filter bson.M, update bson.M) error {
	set, err := setClause(update)
	if err != nil {
		return fmt.Errorf("update %s: %w", collection, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.data[collection]
	for i, row := range rows {
		if !matches(row, filter) {
			continue
		}

		next := make(bson.M, len(row)+len(set))
		for k, v := range row {
			next[k] = v
		}
		for k, v := range set {
			next[k] = v
		}
		if err := m.checkUnique(collection, next, i); err != nil {
			return err
		}

		rows[i] = next
		return nil
	}
	return ErrNotFound
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

func (m *Memory) CollectionNames(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) Name() string {
	return m.name
}

// EnsureIndexes records unique fields; other indexes are accepted and ignored.
func (m *Memory) EnsureIndexes(_ context.Context, indexes []Index) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, idx := range indexes {
		if !idx.Unique {
			continue
		}
		m.uniques[idx.Collection] = append(m.uniques[idx.Collection], idx.Field)
	}
	return nil
}

// checkUnique must be called with the write lock held. skip is the index of
// the row being replaced, or -1 for an insert.
func (m *Memory) checkUnique(collection string, row bson.M, skip int) error {
	for _, field := range m.uniques[collection] {
		v, ok := row[field]
		if !ok || v == nil {
			continue
		}
		for i, existing := range m.data[collection] {
			if i == skip {
				continue
			}
			if reflect.DeepEqual(existing[field], v) {
				return fmt.Errorf("%w: %s.%s", ErrDuplicateKey, collection, field)
			}
		}
	}
	return nil
}

func matches(row, filter bson.M) bool {
	for k, want := range filter {
		got, ok := row[k]
		if !ok {
			return false
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func setClause(update bson.M) (bson.M, error) {
	for op := range update {
		if op != "$set" {
			return nil, fmt.Errorf("unsupported update operator %q", op)
		}
	}

	raw, ok := update["$set"]
	if !ok {
		return nil, fmt.Errorf("update has no $set clause")
	}
	return toM(raw)
}

func toM(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}

	var out bson.M
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decode(row bson.M, out any) error {
	raw, err := bson.Marshal(row)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}
