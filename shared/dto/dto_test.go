package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lodging/shared/constant"
	"lodging/shared/dto"
	"lodging/shared/model"
	"lodging/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(modifiedAt, constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=start_at&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "start_at", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults applied",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			query:          "page=-1&limit=abc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "qualified sort column",
			query:    "sort_by=reservations.start_at&sort_dir=DESC",
			expected: dto.QueryParams{SortBy: "reservations.start_at", SortDir: dto.SortDirDesc},
		},
		{
			name:     "sort column with sql is ignored",
			query:    "sort_by=start_at%3BDROP%20TABLE%20rooms&sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/reservations?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	windowStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq, Table: "reservations"},
			wantWhere: "reservations.room_id = :room_id",
			wantArgs:  map[string]any{"room_id": "r1"},
		},
		{
			name:      "strict less with arg name",
			filter:    dto.Filter{ArgName: "window_end", Field: "start_at", Value: windowStart, Operator: dto.FilterOperatorLess},
			wantWhere: "start_at < :window_end",
			wantArgs:  map[string]any{"window_end": windowStart},
		},
		{
			name:      "strict greater",
			filter:    dto.Filter{Field: "end_at", Value: windowStart, Operator: dto.FilterOperatorGreater},
			wantWhere: "end_at > :end_at",
			wantArgs:  map[string]any{"end_at": windowStart},
		},
		{
			name:      "greater or equal",
			filter:    dto.Filter{Field: "end_at", Value: windowStart, Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "end_at >= :end_at",
			wantArgs:  map[string]any{"end_at": windowStart},
		},
		{
			name:      "in with slice",
			filter:    dto.Filter{Field: "status", Value: []string{"Confirmada", "Pendente"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "Confirmada", "status_1": "Pendente"},
		},
		{
			name:      "in with empty slice",
			filter:    dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in with scalar",
			filter:    dto.Filter{Field: "status", Value: "Confirmada", Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status)",
			wantArgs:  map[string]any{"status": "Confirmada"},
		},
		{
			name:      "like",
			filter:    dto.Filter{Field: "name", Value: "Beach", Operator: dto.FilterOperatorLike, Table: "lodgings"},
			wantWhere: "LOWER(lodgings.name) LIKE LOWER(:name)",
			wantArgs:  map[string]any{"name": "%Beach%"},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "modified_by", Operator: dto.FilterIsNull},
			wantWhere: "modified_by IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "a", Field: "start_at", Value: 1, Operator: dto.FilterOperatorGreaterEq},
					dto.Filter{ArgName: "b", Field: "end_at", Value: 2, Operator: dto.FilterOperatorLessEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND (start_at >= :a OR end_at <= :b))", where)
	assert.Equal(t, map[string]any{"room_id": "r1", "a": 1, "b": 2}, args)

	skipped := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "x", Operator: "between"}, dto.Filter{Field: "id", Value: "1", Operator: dto.FilterOperatorEq}},
	}
	where, _ = skipped.GetWhereClause()

	assert.Equal(t, "(id = :id)", where, "unrenderable filters are dropped")

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
