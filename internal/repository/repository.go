package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoStore is returned by callers that were started without a document
// store.
var ErrNoStore = errors.New("document store not configured")

// Document is a stored entity as it leaves the repository: the store's _id is
// replaced by a string "id" and every value is JSON-safe.
type Document map[string]interface{}

// Repository is the persistence adapter used by the API.
type Repository interface {
	// Insert stores entity in collection and returns the generated id.
	Insert(ctx context.Context, collection string, entity interface{}) (string, error)
	// Fetch returns documents of collection matching filter in the store's
	// natural order. A nil or empty filter matches everything; limit <= 0
	// means no limit.
	Fetch(ctx context.Context, collection string, filter bson.M, limit int64) ([]Document, error)
}

// Inspector exposes the read-only details reported by the diagnostics probe.
type Inspector interface {
	Name() string
	Ping(ctx context.Context) error
	ListCollectionNames(ctx context.Context) ([]string, error)
}

// Store is a Repository that can also be inspected.
type Store interface {
	Repository
	Inspector
}

// toDocument encodes entity into a BSON document without any identifier
// field.
func toDocument(entity interface{}) (bson.M, error) {
	if entity == nil {
		return nil, errors.New("nil entity")
	}
	raw, err := bson.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("encode entity: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode entity: %w", err)
	}
	delete(doc, "_id")
	delete(doc, "id")
	return doc, nil
}

// exposeID converts a stored document into a Document, renaming _id to a
// string id.
func exposeID(doc bson.M) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		out[k] = jsonSafe(v)
	}
	if id, ok := doc["_id"]; ok {
		out["id"] = idString(id)
	} else {
		out["id"] = ""
	}
	return out
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

func jsonSafe(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case primitive.Decimal128:
		return t.String()
	case primitive.Binary:
		return t.Data
	case primitive.Regex:
		return t.Pattern
	case primitive.D:
		m := make(map[string]interface{}, len(t))
		for _, e := range t {
			m[e.Key] = jsonSafe(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = jsonSafe(e)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = jsonSafe(e)
		}
		return m
	case primitive.A:
		s := make([]interface{}, len(t))
		for i, e := range t {
			s[i] = jsonSafe(e)
		}
		return s
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, e := range t {
			s[i] = jsonSafe(e)
		}
		return s
	case primitive.Null, primitive.Undefined:
		return nil
	}
	return v
}
