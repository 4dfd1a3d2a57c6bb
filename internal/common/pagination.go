// File: internal/common/pagination.go
package common

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

const MaxPageSize = 100

// PaginationQuery holds the optional page/limit parameters a caller sent.
// Zero means "not sent"; the upstream applies its own defaults then.
type PaginationQuery struct {
	Page  int
	Limit int
}

// GetPaginationParams extracts page and limit from the query string.
// Values that are missing, non-numeric or non-positive are dropped; limit is capped at MaxPageSize.
func GetPaginationParams(c *gin.Context) PaginationQuery {
	var q PaginationQuery
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		q.Limit = min(limit, MaxPageSize)
	}
	return q
}

// Encode renders the query string, empty when nothing was sent.
func (q PaginationQuery) Encode() string {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values.Encode()
}
