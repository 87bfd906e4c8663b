package dto

import (
	"lodging/shared/constant"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// sortColumnPattern keeps sort_by to a plain or table qualified column name,
// it is interpolated into ORDER BY.
var sortColumnPattern = regexp.MustCompile(`^[a-z_]+(\.[a-z_]+)?$`)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Malformed values are ignored. With withDefaults the first page of
// DefaultValueLimit rows is used when page or limit is missing.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	queryParams := r.URL.Query()

	if page, ok := positive(queryParams.Get(constant.RequestParamPage)); ok {
		q.Page = page
	}

	if limit, ok := positive(queryParams.Get(constant.RequestParamLimit)); ok {
		q.Limit = limit
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortColumnPattern.MatchString(sortBy) {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if withDefaults {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

func positive(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)

	return n, err == nil && n > 0
}
