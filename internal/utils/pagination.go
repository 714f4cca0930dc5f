package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/etams/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// GetPaginationParams extracts pagination parameters from the request.
// The second result is false when the request asks for neither page nor limit,
// in which case the full list is returned.
func GetPaginationParams(c *gin.Context) (PaginationParams, bool) {
	_, hasPage := c.GetQuery("page")
	_, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return PaginationParams{}, false
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, true
}

// SetTotalHeader exposes the unpaginated result size to clients.
func SetTotalHeader(c *gin.Context, total int64) {
	c.Header(constants.HeaderTotalCount, strconv.FormatInt(total, 10))
}
