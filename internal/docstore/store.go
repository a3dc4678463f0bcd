// Package docstore is the document store the portal persists into: whole JSON
// documents addressed by (collection, key), with conjunctive filtered queries
// and keyset pagination.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Common store errors.
var (
	ErrNotFound            = errors.New("document not found")
	ErrInvalidCursor       = errors.New("invalid page cursor")
	ErrInvalidPageSize     = errors.New("page size must be greater than zero")
	ErrUnsupportedOperator = errors.New("unsupported filter operator")
	ErrInvalidQuery        = errors.New("invalid query")
)

// Fields is the body of a stored document.
type Fields map[string]any

// Document is a stored document together with its key.
type Document struct {
	Key    string
	Fields Fields
}

// Decode unmarshals the document body into dst.
func (d Document) Decode(dst any) error {
	raw, err := json.Marshal(d.Fields)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", d.Key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode document %s: %w", d.Key, err)
	}
	return nil
}

// Encode converts a tagged struct into document fields.
func Encode(v any) (Fields, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var f Fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return f, nil
}

// Operator is a filter comparison.
type Operator string

const (
	OpEqual          Operator = "=="
	OpNotEqual       Operator = "!="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpArrayContains  Operator = "array-contains"
)

func (o Operator) valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual, OpArrayContains:
		return true
	}
	return false
}

// Filter restricts a query to documents whose top-level field satisfies Op
// against Value. Documents missing the field never match.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

// Where builds a Filter.
func Where(field string, op Operator, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// OrderBy sorts by one top-level field. Ties are broken by document key in
// the same direction.
type OrderBy struct {
	Field     string
	Direction Direction
}

func (o *OrderBy) descending() bool {
	return o != nil && o.Direction == Desc
}

// Position marks where a document sits in a query's sort order.
type Position struct {
	Key string
	// Value is the JSON encoding of the sort field; nil when sorting by key.
	Value json.RawMessage
}

// Query describes a filtered, ordered, limited read of one collection.
type Query struct {
	Collection string
	Filters    []Filter
	// OrderBy is optional; documents are ordered by key when nil.
	OrderBy *OrderBy
	// Limit of zero means no limit.
	Limit      int
	StartAfter *Position
}

func (q Query) validate() error {
	if q.Collection == "" {
		return fmt.Errorf("%w: collection is required", ErrInvalidQuery)
	}
	for _, f := range q.Filters {
		if f.Field == "" {
			return fmt.Errorf("%w: filter field is required", ErrInvalidQuery)
		}
		if !f.Op.valid() {
			return fmt.Errorf("%w: %q", ErrUnsupportedOperator, f.Op)
		}
	}
	if q.OrderBy != nil && q.OrderBy.Field == "" {
		return fmt.Errorf("%w: order field is required", ErrInvalidQuery)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidQuery)
	}
	return nil
}

// Store is the document store contract.
type Store interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, collection, key string) (*Document, error)
	// Put creates or wholly overwrites a document.
	Put(ctx context.Context, collection, key string, fields Fields) error
	// Create writes the document only if the key is absent and reports
	// whether it did.
	Create(ctx context.Context, collection, key string, fields Fields) (bool, error)
	// Update merges fields into an existing document (top-level keys only).
	Update(ctx context.Context, collection, key string, fields Fields) error
	Query(ctx context.Context, q Query) ([]Document, error)
	Delete(ctx context.Context, collection, key string) error
}
