// Package query holds paging and sorting primitives shared by repository filters.
package query

import "strings"

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return 10
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return strings.EqualFold(f.SortOrder, "desc")
}

// OrderClause builds "<column> ASC|DESC" from a whitelist of sortable columns.
// Unknown keys fall back to fallback.
func (f SortFilter) OrderClause(allowed map[string]string, fallback string) string {
	column, ok := allowed[f.SortBy]
	if !ok {
		return fallback
	}
	if f.IsDescending() {
		return column + " DESC"
	}
	return column + " ASC"
}

type BaseFilter struct {
	PageFilter
	SortFilter
}

func NewBaseFilter(page, pageSize int, sortBy, sortOrder string) BaseFilter {
	if sortOrder == "" {
		sortOrder = "desc"
	}
	return BaseFilter{
		PageFilter: PageFilter{Page: page, PageSize: pageSize},
		SortFilter: SortFilter{SortBy: sortBy, SortOrder: sortOrder},
	}
}
