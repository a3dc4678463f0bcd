package docstore

import (
	"context"
)

// PageRequest is one step of a forward-only paginated read.
type PageRequest struct {
	Collection string
	Filters    []Filter
	OrderBy    *OrderBy
	PageSize   int
	// Cursor is the NextCursor of the previous page, empty for the first page.
	Cursor string
}

// Page is a slice of results and the cursor to continue from.
type Page struct {
	Results []Document
	// NextCursor is empty when the page is empty, which marks the end of the
	// stream. A partial last page still carries a cursor; the page after it
	// comes back empty.
	NextCursor string
}

// FetchPage runs one paginated query against s.
func FetchPage(ctx context.Context, s Store, req PageRequest) (*Page, error) {
	if req.PageSize <= 0 {
		return nil, ErrInvalidPageSize
	}

	q := Query{
		Collection: req.Collection,
		Filters:    req.Filters,
		OrderBy:    req.OrderBy,
		Limit:      req.PageSize,
	}
	if req.Cursor != "" {
		pos, err := DecodeCursor(req.Cursor)
		if err != nil {
			return nil, err
		}
		q.StartAfter = pos
	}

	docs, err := s.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	page := &Page{Results: docs}
	if len(docs) == 0 {
		page.Results = []Document{}
		return page, nil
	}
	page.NextCursor = EncodeCursor(PositionOf(docs[len(docs)-1], req.OrderBy))
	return page, nil
}
