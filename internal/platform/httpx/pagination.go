package httpx

import (
	"strconv"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/gin-gonic/gin"
)

const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 100
)

// PageParams is the page/size/sort triple accepted by every list endpoint.
type PageParams struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Limit and Offset translate the page/size pair into a SQL LIMIT/OFFSET.
func (p PageParams) Limit() int  { return p.Size }
func (p PageParams) Offset() int { return (p.Page - 1) * p.Size }

// PageMeta is the pagination metadata attached to a page response.
type PageMeta struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// Page is the envelope returned by every paginated list endpoint.
type Page struct {
	Items      interface{} `json:"items"`
	Pagination PageMeta    `json:"pagination"`
}

// ParsePageParams extracts and validates page/size/sortBy/sortDir from the
// query string, defaulting sortDir to "asc" and clamping size to MaxSize.
func ParsePageParams(c *gin.Context, defaultSortBy string) (PageParams, error) {
	page := DefaultPage
	size := DefaultSize

	if v := c.Query("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return PageParams{}, apperr.Validation("page must be a positive integer",
				apperr.FieldError{Field: "page", RejectedValue: v, Message: "must be a positive integer"})
		}
		page = parsed
	}

	if v := c.Query("size"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return PageParams{}, apperr.Validation("size must be a positive integer",
				apperr.FieldError{Field: "size", RejectedValue: v, Message: "must be a positive integer"})
		}
		size = parsed
		if size > MaxSize {
			size = MaxSize
		}
	}

	sortBy := c.DefaultQuery("sortBy", defaultSortBy)
	sortDir := c.DefaultQuery("sortDir", "asc")
	if sortDir != "asc" && sortDir != "desc" {
		sortDir = "asc"
	}

	return PageParams{Page: page, Size: size, SortBy: sortBy, SortDir: sortDir}, nil
}

// RespondWithPage sends a paginated list response.
func RespondWithPage(c *gin.Context, items interface{}, params PageParams, total int) {
	c.JSON(200, Page{
		Items: items,
		Pagination: PageMeta{
			Page:  params.Page,
			Size:  params.Size,
			Total: total,
		},
	})
}
