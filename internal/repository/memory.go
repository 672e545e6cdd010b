package repository

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-process Store used by tests and by local runs started
// with DATABASE_DRIVER=memory. Documents are kept in insertion order, which
// stands in for the natural order of a real store.
type MemoryRepo struct {
	mu    sync.RWMutex
	name  string
	store map[string][]bson.M
}

func NewMemoryRepo(name string) *MemoryRepo {
	if name == "" {
		name = "memory"
	}
	return &MemoryRepo{name: name, store: make(map[string][]bson.M)}
}

func (m *MemoryRepo) Insert(ctx context.Context, collection string, entity interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc, err := toDocument(entity)
	if err != nil {
		return "", err
	}
	id := primitive.NewObjectID()
	doc["_id"] = id
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[collection] = append(m.store[collection], doc)
	return id.Hex(), nil
}

// Seed stores raw documents as they would be written by an out-of-band
// process. Documents without _id get a fresh ObjectID.
func (m *MemoryRepo) Seed(collection string, docs ...bson.M) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range docs {
		c := make(bson.M, len(d)+1)
		for k, v := range d {
			c[k] = v
		}
		if _, ok := c["_id"]; !ok {
			c["_id"] = primitive.NewObjectID()
		}
		m.store[collection] = append(m.store[collection], c)
	}
}

func (m *MemoryRepo) Fetch(ctx context.Context, collection string, filter bson.M, limit int64) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Document{}
	for _, d := range m.store[collection] {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if !matches(d, filter) {
			continue
		}
		out = append(out, exposeID(d))
	}
	return out, nil
}

// matches supports top-level equality filters only.
func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// Count returns the number of documents in collection.
func (m *MemoryRepo) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store[collection])
}

func (m *MemoryRepo) Name() string { return m.name }

func (m *MemoryRepo) Ping(ctx context.Context) error { return ctx.Err() }

func (m *MemoryRepo) ListCollectionNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.store))
	for n := range m.store {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
