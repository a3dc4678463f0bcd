package repository

import (
	"context"
	"errors"

	"github.com/stemsi/placement-backend/internal/docstore"
)

// ErrNotFound is returned when a keyed lookup finds nothing.
var ErrNotFound = errors.New("record not found")

// PageParams selects one page of a list.
type PageParams struct {
	Size   int
	Cursor string
}

// fetchPage runs a paginated query and decodes each result into T.
func fetchPage[T any](ctx context.Context, store docstore.Store, req docstore.PageRequest) ([]T, string, error) {
	page, err := docstore.FetchPage(ctx, store, req)
	if err != nil {
		return nil, "", err
	}
	items := make([]T, 0, len(page.Results))
	for _, doc := range page.Results {
		var item T
		if err := doc.Decode(&item); err != nil {
			return nil, "", err
		}
		items = append(items, item)
	}
	return items, page.NextCursor, nil
}

// getDecoded loads one document into dst, mapping docstore.ErrNotFound.
func getDecoded(ctx context.Context, store docstore.Store, collection, key string, dst any) error {
	doc, err := store.Get(ctx, collection, key)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return doc.Decode(dst)
}

// findOne returns the first document matching filters, decoded into dst.
func findOne(ctx context.Context, store docstore.Store, collection string, dst any, filters ...docstore.Filter) error {
	docs, err := store.Query(ctx, docstore.Query{
		Collection: collection,
		Filters:    filters,
		Limit:      1,
	})
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return ErrNotFound
	}
	return docs[0].Decode(dst)
}

func put(ctx context.Context, store docstore.Store, collection, key string, v any) error {
	fields, err := docstore.Encode(v)
	if err != nil {
		return err
	}
	return store.Put(ctx, collection, key, fields)
}

func update(ctx context.Context, store docstore.Store, collection, key string, fields docstore.Fields) error {
	if err := store.Update(ctx, collection, key, fields); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
