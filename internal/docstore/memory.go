package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// InMemory is a Store held in process memory. Documents are kept JSON-encoded
// so callers never share maps with the store.
type InMemory struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{collections: make(map[string]map[string][]byte)}
}

func (m *InMemory) Get(_ context.Context, collection, key string) (*Document, error) {
	m.mu.RLock()
	raw, ok := m.collections[collection][key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeDocument(key, raw)
}

func (m *InMemory) Put(_ context.Context, collection, key string, fields Fields) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bucket(collection)[key] = raw
	return nil
}

func (m *InMemory) Create(_ context.Context, collection, key string, fields Fields) (bool, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return false, fmt.Errorf("encode document: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bucket(collection)
	if _, exists := b[key]; exists {
		return false, nil
	}
	b[key] = raw
	return true, nil
}

func (m *InMemory) Update(_ context.Context, collection, key string, fields Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bucket(collection)
	raw, ok := b[key]
	if !ok {
		return ErrNotFound
	}
	var current Fields
	if err := json.Unmarshal(raw, &current); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	for k, v := range fields {
		current[k] = v
	}
	merged, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	b[key] = merged
	return nil
}

func (m *InMemory) Delete(_ context.Context, collection, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections[collection], key)
	return nil
}

func (m *InMemory) Query(_ context.Context, q Query) ([]Document, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	filters := make([]Filter, len(q.Filters))
	for i, f := range q.Filters {
		v, err := normalize(f.Value)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", f.Field, err)
		}
		filters[i] = Filter{Field: f.Field, Op: f.Op, Value: v}
	}

	m.mu.RLock()
	docs := make([]Document, 0, len(m.collections[q.Collection]))
	for key, raw := range m.collections[q.Collection] {
		doc, err := decodeDocument(key, raw)
		if err != nil {
			m.mu.RUnlock()
			return nil, err
		}
		if matchesAll(doc.Fields, filters) {
			docs = append(docs, *doc)
		}
	}
	m.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		return compareDocs(docs[i], docs[j], q.OrderBy) < 0
	})

	if q.StartAfter != nil {
		var after any
		if q.OrderBy != nil && len(q.StartAfter.Value) > 0 {
			if err := json.Unmarshal(q.StartAfter.Value, &after); err != nil {
				return nil, ErrInvalidCursor
			}
		}
		start := sort.Search(len(docs), func(i int) bool {
			return comparePosition(docs[i], after, q.StartAfter.Key, q.OrderBy) > 0
		})
		docs = docs[start:]
	}

	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (m *InMemory) bucket(collection string) map[string][]byte {
	b, ok := m.collections[collection]
	if !ok {
		b = make(map[string][]byte)
		m.collections[collection] = b
	}
	return b
}

func decodeDocument(key string, raw []byte) (*Document, error) {
	var f Fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", key, err)
	}
	return &Document{Key: key, Fields: f}, nil
}

// normalize maps a Go value onto its JSON-decoded form so it compares the
// same way stored values do.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func matchesAll(fields Fields, filters []Filter) bool {
	for _, f := range filters {
		v, ok := fields[f.Field]
		if !ok {
			return false
		}
		if !matches(v, f) {
			return false
		}
	}
	return true
}

func matches(v any, f Filter) bool {
	if f.Op == OpArrayContains {
		arr, ok := v.([]any)
		if !ok {
			return false
		}
		for _, el := range arr {
			if compareValues(el, f.Value) == 0 {
				return true
			}
		}
		return false
	}

	c := compareValues(v, f.Value)
	switch f.Op {
	case OpEqual:
		return c == 0
	case OpNotEqual:
		return c != 0
	case OpLess:
		return c < 0
	case OpLessOrEqual:
		return c <= 0
	case OpGreater:
		return c > 0
	case OpGreaterOrEqual:
		return c >= 0
	}
	return false
}

func compareDocs(a, b Document, order *OrderBy) int {
	c := 0
	if order != nil {
		c = compareValues(a.Fields[order.Field], b.Fields[order.Field])
	}
	if c == 0 {
		c = strings.Compare(a.Key, b.Key)
	}
	if order.descending() {
		return -c
	}
	return c
}

// comparePosition orders doc against a cursor position in query order.
func comparePosition(doc Document, value any, key string, order *OrderBy) int {
	c := 0
	if order != nil {
		c = compareValues(doc.Fields[order.Field], value)
	}
	if c == 0 {
		c = strings.Compare(doc.Key, key)
	}
	if order.descending() {
		return -c
	}
	return c
}

// typeRank follows the jsonb ordering used by the Postgres store:
// null < string < number < bool < array < object.
func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case string:
		return 1
	case float64:
		return 2
	case bool:
		return 3
	case []any:
		return 4
	default:
		return 5
	}
}

func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch av := a.(type) {
	case nil:
		return 0
	case string:
		return strings.Compare(av, b.(string))
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	case []any:
		bv := b.([]any)
		for i := 0; i < len(av) && i < len(bv); i++ {
			if c := compareValues(av[i], bv[i]); c != 0 {
				return c
			}
		}
		return len(av) - len(bv)
	default:
		ja, _ := json.Marshal(a)
		jb, _ := json.Marshal(b)
		return strings.Compare(string(ja), string(jb))
	}
}
