// AngelaMos | 2026
// dto_test.go

package submission

import (
	"net/http/httptest"
	"testing"
)

func TestListParamsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListParams
		want ListParams
	}{
		{
			name: "zero values take defaults",
			in:   ListParams{},
			want: ListParams{
				Page: 1, Limit: 20,
				SortBy: "submission_date", SortOrder: "desc",
			},
		},
		{
			name: "negative page clamps to one",
			in:   ListParams{Page: -3, Limit: 10},
			want: ListParams{
				Page: 1, Limit: 10,
				SortBy: "submission_date", SortOrder: "desc",
			},
		},
		{
			name: "limit capped",
			in:   ListParams{Page: 2, Limit: 5000},
			want: ListParams{
				Page: 2, Limit: 100,
				SortBy: "submission_date", SortOrder: "desc",
			},
		},
		{
			name: "unknown sort column falls back",
			in:   ListParams{Page: 1, Limit: 20, SortBy: "password_hash"},
			want: ListParams{
				Page: 1, Limit: 20,
				SortBy: "submission_date", SortOrder: "desc",
			},
		},
		{
			name: "asc order preserved",
			in: ListParams{
				Page: 1, Limit: 20,
				SortBy: "quality_score", SortOrder: "asc",
			},
			want: ListParams{
				Page: 1, Limit: 20,
				SortBy: "quality_score", SortOrder: "asc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		page      int
		limit     int
		wantPages int
	}{
		{"45 records at 20 per page", 45, 2, 20, 3},
		{"exact multiple", 40, 1, 20, 2},
		{"empty set", 0, 1, 20, 0},
		{"single record", 1, 1, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagination(tt.total, tt.page, tt.limit)
			if got.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", got.Pages, tt.wantPages)
			}
			if got.Total != tt.total || got.Page != tt.page {
				t.Errorf("pagination = %+v", got)
			}
		})
	}
}

func TestParseListParams(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/submissions?page=2&limit=10&search=smith&status=pending"+
			"&country=United+States&dateFrom=2026-01-01&dateTo=2026-06-30"+
			"&sortBy=quality_score&sortOrder=asc", nil)

	params := ParseListParams(r)

	if params.Page != 2 || params.Limit != 10 {
		t.Errorf("page/limit = %d/%d", params.Page, params.Limit)
	}
	if params.Search != "smith" || params.Status != "pending" {
		t.Errorf("search/status = %q/%q", params.Search, params.Status)
	}
	if params.Country != "United States" {
		t.Errorf("country = %q", params.Country)
	}
	if params.DateFrom == nil || params.DateTo == nil {
		t.Fatal("date range not parsed")
	}
	if !params.DateTo.After(*params.DateFrom) {
		t.Error("dateTo should be after dateFrom")
	}
	if params.SortBy != "quality_score" || params.SortOrder != "asc" {
		t.Errorf("sort = %s %s", params.SortBy, params.SortOrder)
	}

	if params.Offset() != 10 {
		t.Errorf("Offset() = %d, want 10", params.Offset())
	}
}

func TestParseListParamsGarbage(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/submissions?page=abc&limit=-5&dateFrom=notadate", nil)

	params := ParseListParams(r)

	if params.Page != 1 || params.Limit != 20 {
		t.Errorf("defaults not applied: page=%d limit=%d",
			params.Page, params.Limit)
	}
	if params.DateFrom != nil {
		t.Error("bad dateFrom should be ignored")
	}
}
