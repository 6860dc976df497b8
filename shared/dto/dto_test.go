package dto_test

import (
	"net/http"
	"net/url"
	"stay/shared/constant"
	"stay/shared/dto"
	"stay/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEmpty(t, metadata.UpdatedAt)
	assert.NotEqual(t, metadata.CreatedAt, metadata.UpdatedAt)

	parsed, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(createdAt))
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "price_per_night",
				"sort_dir": "asc",
			},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "price_per_night", SortDir: "ASC"},
		},
		{
			name:           "defaults when nothing provided",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "no defaults when disabled",
			queryParams: map[string]string{},
			expected:    dto.QueryParams{},
		},
		{
			name:           "invalid page and negative limit use defaults",
			queryParams:    map[string]string{"page": "invalid", "limit": "-10"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "unknown sort direction is dropped",
			queryParams: map[string]string{"sort_dir": "sideways"},
			expected:    dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := url.Values{}
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}

			req, err := http.NewRequest(http.MethodGet, "http://example.com/v1/listings?"+query.Encode(), nil)
			assert.NoError(t, err)

			queryParams := dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, queryParams)
		})
	}
}

func TestQueryParams_Ordering(t *testing.T) {
	sortable := []string{"created_at", "price_per_night"}

	tests := []struct {
		name    string
		params  dto.QueryParams
		wantBy  string
		wantDir string
	}{
		{name: "default is newest first", params: dto.QueryParams{}, wantBy: "created_at", wantDir: "DESC"},
		{name: "allowed column", params: dto.QueryParams{SortBy: "price_per_night", SortDir: "ASC"}, wantBy: "price_per_night", wantDir: "ASC"},
		{name: "unknown column falls back", params: dto.QueryParams{SortBy: "1; DROP TABLE listings", SortDir: "ASC"}, wantBy: "created_at", wantDir: "ASC"},
		{name: "lower case direction", params: dto.QueryParams{SortBy: "created_at", SortDir: "asc"}, wantBy: "created_at", wantDir: "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sortBy, sortDir := tt.params.Ordering(sortable)

			assert.Equal(t, tt.wantBy, sortBy)
			assert.Equal(t, tt.wantDir, sortDir)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equality with table",
			filter:    dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.status = :status",
			wantArgs:  map[string]any{"status": "pending"},
		},
		{
			name:      "like lower cases both sides",
			filter:    dto.Filter{Field: "location", Value: "paris", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(location) LIKE LOWER(:location)",
			wantArgs:  map[string]any{"location": "%paris%"},
		},
		{
			name:      "range with custom argument name",
			filter:    dto.Filter{ArgName: "min_price", Field: "price_per_night", Value: 50, Operator: dto.FilterOperatorGreaterEq, Table: "listings"},
			wantWhere: "listings.price_per_night >= :min_price",
			wantArgs:  map[string]any{"min_price": 50},
		},
		{
			name:      "in expands slice",
			filter:    dto.Filter{Field: "status", Value: []string{"pending", "confirmed"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name:      "in with scalar is ignored",
			filter:    dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorIn},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is not null",
			filter:    dto.Filter{Field: "listing_id", Operator: dto.FilterIsNotNull, Table: "listings"},
			wantWhere: "listings.listing_id IS NOT NULL",
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

func TestFilterGroup(t *testing.T) {
	group := dto.And()
	group.Add(dto.Filter{Field: "listing_id", Value: "", Operator: dto.FilterOperatorEq})
	assert.True(t, group.IsEmpty())

	where, args := group.GetWhereClause()
	assert.Empty(t, where)
	assert.Empty(t, args)

	group.Add(dto.Filter{Field: "listing_id", Value: "l-1", Operator: dto.FilterOperatorEq, Table: "bookings"})
	group.Add(dto.Filter{Field: "user_id", Value: "u-1", Operator: dto.FilterOperatorEq, Table: "bookings"})

	where, args = group.GetWhereClause()
	assert.Equal(t, "(bookings.listing_id = :listing_id AND bookings.user_id = :user_id)", where)
	assert.Equal(t, map[string]any{"listing_id": "l-1", "user_id": "u-1"}, args)
}
