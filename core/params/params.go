package params

import (
	"strconv"
	"strings"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// NewQueryParams reads page, limit and search from the query string.
func NewQueryParams(c echo.Context) *QueryParams {
	return &QueryParams{
		PageNumber: clamp(c.QueryParam("page"), constants.DefaultPageNumber, 1, 1<<20),
		PageSize:   clamp(c.QueryParam("limit"), constants.DefaultPageSize, 1, constants.MaxPageSize),
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

func clamp(raw string, def, lo, hi int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
