package service

import (
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
)

// Paging holds the page size bounds applied to list requests.
type Paging struct {
	Default int
	Max     int
}

// Params clamps a page query into repository parameters.
func (p Paging) Params(q model.PageQuery) repository.PageParams {
	size := q.PageSize
	if size < 1 {
		size = p.Default
	}
	if p.Max > 0 && size > p.Max {
		size = p.Max
	}
	return repository.PageParams{Size: size, Cursor: q.Cursor}
}
