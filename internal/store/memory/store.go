// Package memory implements the document store in process memory. It mirrors
// the MongoDB adapter's observable semantics (hex ids, timestamp stamping,
// case-insensitive substring matching) and backs tests that need a working
// store without a running database.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayurbloom/catalog-service/internal/store"
)

// Store is an in-memory document store keyed by collection name.
// Thread-safe via sync.RWMutex.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		collections: make(map[string][]bson.M),
	}
}

// Insert adds a document, stamping timestamps when unset, and returns the new
// document's hex id.
func (s *Store) Insert(ctx context.Context, collection string, doc any) (string, error) {
	m, err := toDocument(doc)
	if err != nil {
		return "", err
	}

	oid := primitive.NewObjectID()
	m["_id"] = oid

	now := time.Now().UTC()
	if v, ok := m["created_at"]; !ok || isUnsetTime(v) {
		m["created_at"] = now
	}
	if v, ok := m["updated_at"]; !ok || isUnsetTime(v) {
		m["updated_at"] = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], m)

	return oid.Hex(), nil
}

// Find decodes all matching documents into out, honoring sort and limit.
func (s *Store) Find(ctx context.Context, collection string, q store.Query, out any) error {
	s.mu.RLock()
	matched := make([]bson.M, 0)
	for _, doc := range s.collections[collection] {
		if matchesFilter(doc, q.Filter) {
			matched = append(matched, doc)
		}
	}
	s.mu.RUnlock()

	if q.Sort != nil {
		sortDocs(matched, *q.Sort)
	}
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}

	return decodeInto(matched, out)
}

// FindByID decodes the identified document into out.
func (s *Store) FindByID(ctx context.Context, collection, id string, out any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if doc["_id"] == oid {
			raw, err := bson.Marshal(doc)
			if err != nil {
				return err
			}
			return bson.Unmarshal(raw, out)
		}
	}
	return store.ErrNotFound
}

// ReplaceByID merges doc's fields over the stored document, refreshing
// updated_at, and reports whether a document was modified.
func (s *Store) ReplaceByID(ctx context.Context, collection, id string, doc any) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	m, err := toDocument(doc)
	if err != nil {
		return false, err
	}
	delete(m, "_id")
	if v, ok := m["created_at"]; ok && isUnsetTime(v) {
		delete(m, "created_at")
	}
	m["updated_at"] = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stored := range s.collections[collection] {
		if stored["_id"] == oid {
			for k, v := range m {
				stored[k] = v
			}
			return true, nil
		}
	}
	return false, nil
}

// DeleteByID removes the identified document.
func (s *Store) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if doc["_id"] == oid {
			s.collections[collection] = append(docs[:i], docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of documents in the collection.
func (s *Store) Count(ctx context.Context, collection string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.collections[collection])), nil
}

// Collections lists the collection names holding at least one document.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name, docs := range s.collections {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Ping always succeeds for the in-memory store.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// --- filter evaluation ---

func matchesFilter(doc bson.M, f store.Filter) bool {
	for _, c := range f {
		if !matchesCondition(doc, c) {
			return false
		}
	}
	return true
}

func matchesCondition(doc bson.M, c store.Condition) bool {
	switch c.Op {
	case store.OpEqual:
		return valuesEqual(doc[c.Field], c.Value)
	case store.OpContains:
		s, ok := doc[c.Field].(string)
		if !ok {
			return false
		}
		return containsFold(s, c.Value)
	case store.OpElemContains:
		arr, ok := doc[c.Field].(primitive.A)
		if !ok {
			return false
		}
		for _, el := range arr {
			if s, ok := el.(string); ok && containsFold(s, c.Value) {
				return true
			}
		}
		return false
	case store.OpGTE:
		v, ok := toFloat(doc[c.Field])
		bound, _ := toFloat(c.Value)
		return ok && v >= bound
	case store.OpLTE:
		v, ok := toFloat(doc[c.Field])
		bound, _ := toFloat(c.Value)
		return ok && v <= bound
	case store.OpOr:
		for _, sub := range c.Or {
			if matchesCondition(doc, sub) {
				return true
			}
		}
		return false
	}
	return false
}

func containsFold(s string, v any) bool {
	sub, ok := v.(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func valuesEqual(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
	}
	return a == b
}

// toFloat normalizes the numeric types bson decoding produces.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// sortDocs orders documents by the sort field; missing numeric values rank
// as zero, missing strings as empty.
func sortDocs(docs []bson.M, s store.Sort) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := docs[i][s.Field], docs[j][s.Field]

		if af, aok := toFloat(a); aok || a == nil {
			bf, _ := toFloat(b)
			if s.Descending {
				return af > bf
			}
			return af < bf
		}

		as, _ := a.(string)
		bs, _ := b.(string)
		if s.Descending {
			return as > bs
		}
		return as < bs
	})
}

// --- document plumbing ---

func toDocument(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return m, nil
}

func isUnsetTime(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case time.Time:
		return t.IsZero()
	case primitive.DateTime:
		return t <= 0
	default:
		return false
	}
}

// decodeInto re-encodes each matched document into the elements of out,
// which must be a pointer to a slice.
func decodeInto(docs []bson.M, out any) error {
	outV := reflect.ValueOf(out)
	if outV.Kind() != reflect.Pointer || outV.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("decode target must be a pointer to a slice, got %T", out)
	}

	sliceV := reflect.MakeSlice(outV.Elem().Type(), 0, len(docs))
	for _, doc := range docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		elem := reflect.New(outV.Elem().Type().Elem())
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		sliceV = reflect.Append(sliceV, elem.Elem())
	}
	outV.Elem().Set(sliceV)
	return nil
}
