package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2024, 6, 2, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input model.Metadata
		want  dto.Metadata
	}{
		{
			name:  "created and modified",
			input: model.Metadata{CreatedAt: createdAt, ModifiedAt: modifiedAt, CreatedBy: "admin-1", ModifiedBy: "manager-2"},
			want: dto.Metadata{
				CreatedAt:  timezone.Format(createdAt, constant.DateFormat),
				CreatedBy:  "admin-1",
				ModifiedAt: timezone.Format(modifiedAt, constant.DateFormat),
				ModifiedBy: "manager-2",
			},
		},
		{
			name:  "zero modified time stays empty",
			input: model.Metadata{CreatedAt: createdAt, CreatedBy: "guest"},
			want:  dto.Metadata{CreatedAt: timezone.Format(createdAt, constant.DateFormat), CreatedBy: "guest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got dto.Metadata
			got.FromModel(tt.input)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		withDefaults bool
		want         dto.QueryParams
	}{
		{
			name:   "all parameters",
			target: "/v1/rooms?page=2&limit=20&sort_by=price&sort_dir=asc",
			want:   dto.QueryParams{Page: 2, Limit: 20, SortBy: "price", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults",
			target:       "/v1/rooms",
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:   "no defaults leaves zero values",
			target: "/v1/rooms",
			want:   dto.QueryParams{},
		},
		{
			name:         "invalid numbers fall back",
			target:       "/v1/rooms?page=-1&limit=abc",
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:         "limit is capped",
			target:       "/v1/rooms?limit=5000",
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.MaxValueLimit},
		},
		{
			name:   "unknown sort direction is dropped",
			target: "/v1/rooms?sort_dir=sideways",
			want:   dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got dto.QueryParams
			got.FromRequest(httptest.NewRequest("GET", tt.target, nil), tt.withDefaults)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	allowed := map[string]string{"name": "rooms.name", "price": "rooms.price_per_night"}

	tests := []struct {
		name    string
		params  dto.QueryParams
		sortBy  string
		sortDir string
	}{
		{name: "allowed column is qualified", params: dto.QueryParams{SortBy: "price", SortDir: "ASC"}, sortBy: "rooms.price_per_night", sortDir: "ASC"},
		{name: "unknown column falls back", params: dto.QueryParams{SortBy: "1; DROP TABLE rooms"}, sortBy: "rooms.created_at", sortDir: "DESC"},
		{name: "empty column falls back", params: dto.QueryParams{}, sortBy: "rooms.created_at", sortDir: "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			params.RestrictSort(allowed, "rooms.created_at")

			assert.Equal(t, tt.sortBy, params.SortBy)
			assert.Equal(t, tt.sortDir, params.SortDir)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	tests := []struct {
		params dto.QueryParams
		want   int
	}{
		{params: dto.QueryParams{Page: 1, Limit: 10}, want: 0},
		{params: dto.QueryParams{Page: 3, Limit: 10}, want: 20},
		{params: dto.QueryParams{Page: 0, Limit: 10}, want: 0},
		{params: dto.QueryParams{Page: 4}, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.params.Offset())
	}
}
