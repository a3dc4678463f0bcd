package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/response"
	"github.com/stemsi/placement-backend/internal/validator"
)

// bindPage reads page_size and cursor. It writes the error response and
// returns false on invalid input.
func bindPage(c *gin.Context) (model.PageQuery, bool) {
	var q model.PageQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return q, false
	}
	return q, true
}

// views converts items to their API shape.
func views[T any, V any](items []T, view func(*T) V) []V {
	out := make([]V, 0, len(items))
	for i := range items {
		out = append(out, view(&items[i]))
	}
	return out
}

func listed[V any](c *gin.Context, key string, items []V, nextCursor string) {
	response.SuccessWithPagination(c, http.StatusOK, gin.H{key: items}, response.NewPagination(len(items), nextCursor))
}
