// Package store defines a schema-agnostic document store over named
// collections, plus the neutral filter language the catalog service
// translates HTTP query parameters into.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no document matches the given id.
	ErrNotFound = errors.New("store: document not found")

	// ErrUnavailable is returned by every operation when no store
	// connection was established at startup.
	ErrUnavailable = errors.New("store: not connected")
)

// Op identifies a filter condition operator.
type Op int

const (
	// OpEqual matches documents whose field equals the value exactly.
	OpEqual Op = iota
	// OpContains matches documents whose string field contains the value,
	// case-insensitively.
	OpContains
	// OpElemContains matches documents where any element of an array field
	// contains the value, case-insensitively.
	OpElemContains
	// OpGTE matches documents whose numeric field is >= the value.
	OpGTE
	// OpLTE matches documents whose numeric field is <= the value.
	OpLTE
	// OpOr matches documents satisfying at least one of the Or conditions.
	OpOr
)

// Condition is a single filter predicate on a document field.
type Condition struct {
	Field string
	Op    Op
	Value any
	Or    []Condition // populated only for OpOr
}

// Filter is a conjunction of conditions; an empty filter matches everything.
type Filter []Condition

// Eq creates an exact-match condition.
func Eq(field string, value any) Condition {
	return Condition{Field: field, Op: OpEqual, Value: value}
}

// Contains creates a case-insensitive substring condition on a string field.
func Contains(field, value string) Condition {
	return Condition{Field: field, Op: OpContains, Value: value}
}

// ElemContains creates a case-insensitive substring condition matched against
// any element of an array field.
func ElemContains(field, value string) Condition {
	return Condition{Field: field, Op: OpElemContains, Value: value}
}

// GTE creates an inclusive lower-bound condition.
func GTE(field string, value float64) Condition {
	return Condition{Field: field, Op: OpGTE, Value: value}
}

// LTE creates an inclusive upper-bound condition.
func LTE(field string, value float64) Condition {
	return Condition{Field: field, Op: OpLTE, Value: value}
}

// Or creates a disjunction of the given conditions.
func Or(conds ...Condition) Condition {
	return Condition{Op: OpOr, Or: conds}
}

// Sort selects a single sort field and direction.
type Sort struct {
	Field      string
	Descending bool
}

// Query bundles filter, optional sort, and limit for a Find call.
// A zero Limit means no restriction.
type Query struct {
	Filter Filter
	Sort   *Sort
	Limit  int64
}

// Store is a generic document store over named collections. Implementations
// stamp created_at/updated_at on writes and translate between external string
// ids and their internal identifier representation.
type Store interface {
	// Insert adds a document to the collection, stamping created_at and
	// updated_at when unset, and returns the new document's external id.
	Insert(ctx context.Context, collection string, doc any) (string, error)

	// Find decodes all documents matching the query into out, which must be
	// a pointer to a slice.
	Find(ctx context.Context, collection string, q Query, out any) error

	// FindByID decodes the document with the given external id into out.
	// A malformed id is treated as not found.
	FindByID(ctx context.Context, collection, id string, out any) error

	// ReplaceByID overwrites the stored fields of the identified document
	// with doc, refreshing updated_at. It reports whether a document was
	// actually modified; false covers both a missing id and an update that
	// changed nothing.
	ReplaceByID(ctx context.Context, collection, id string, doc any) (bool, error)

	// DeleteByID removes the identified document and reports whether one
	// was deleted.
	DeleteByID(ctx context.Context, collection, id string) (bool, error)

	// Count returns the number of documents in the collection.
	Count(ctx context.Context, collection string) (int64, error)

	// Collections lists the collection names present in the store.
	Collections(ctx context.Context) ([]string, error)

	// Ping verifies the store connection.
	Ping(ctx context.Context) error
}
