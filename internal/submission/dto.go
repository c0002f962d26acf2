// AngelaMos | 2026
// dto.go

package submission

import (
	"net/http"
	"strconv"
	"time"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// sortColumns whitelists user-supplied sort fields. Anything else
// falls back to submission_date.
var sortColumns = map[string]string{
	"submission_date": "submission_date",
	"quality_score":   "quality_score",
	"status":          "status",
	"fname":           "fname",
	"lname":           "lname",
	"email":           "email",
	"state":           "state",
	"geo_country":     "geo_country",
	"created_at":      "created_at",
}

type ListParams struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	Country   string
	DateFrom  *time.Time
	DateTo    *time.Time
	SortBy    string
	SortOrder string
}

// ParseListParams reads filter and pagination query parameters.
// Unparseable values fall back to defaults rather than erroring.
func ParseListParams(r *http.Request) ListParams {
	q := r.URL.Query()

	params := ListParams{
		Page:      defaultPage,
		Limit:     defaultLimit,
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		Country:   q.Get("country"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 1 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		params.Limit = limit
	}

	if from, err := time.Parse("2006-01-02", q.Get("dateFrom")); err == nil {
		params.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", q.Get("dateTo")); err == nil {
		// inclusive end of day
		end := to.Add(24*time.Hour - time.Nanosecond)
		params.DateTo = &end
	}

	return params.Normalize()
}

func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = "submission_date"
	}
	if p.SortOrder != "asc" {
		p.SortOrder = "desc"
	}
	return p
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Limit int `json:"limit"`
}

func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		Total: total,
		Page:  page,
		Pages: pages,
		Limit: limit,
	}
}

type FilterEcho struct {
	Search   string `json:"search,omitempty"`
	Status   string `json:"status,omitempty"`
	Country  string `json:"country,omitempty"`
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
}

type ListResponse struct {
	Submissions []Submission `json:"submissions"`
	Pagination  Pagination   `json:"pagination"`
	Filters     FilterEcho   `json:"filters"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

type NoteRequest struct {
	Content string `json:"content" validate:"required"`
}

// BulkPatch carries the fields a bulk update may touch. Scoring inputs
// are deliberately absent so bulk edits never invalidate stored scores.
type BulkPatch struct {
	Status   *string `json:"status,omitempty" validate:"omitempty"`
	CaseType *string `json:"case_type,omitempty"`
	Campaign *string `json:"campaign,omitempty"`
	OwnerID  *string `json:"ownerid,omitempty"`
}

type BulkUpdateRequest struct {
	IDs    []string  `json:"ids"    validate:"required,min=1"`
	Update BulkPatch `json:"update" validate:"required"`
}

type BulkUpdateResponse struct {
	Modified int64 `json:"modified"`
}

// Summary is the trimmed view embedded in analytics payloads and the
// recent-submissions feed.
type Summary struct {
	ID             string    `db:"id"              json:"id"`
	FirstName      string    `db:"fname"           json:"fname"`
	LastName       string    `db:"lname"           json:"lname"`
	Email          string    `db:"email"           json:"email"`
	GeoCity        string    `db:"geo_city"        json:"geo_city"`
	GeoRegion      string    `db:"geo_region"      json:"geo_region"`
	GeoCountry     string    `db:"geo_country"     json:"geo_country"`
	Status         string    `db:"status"          json:"status"`
	QualityScore   int       `db:"quality_score"   json:"quality_score"`
	SubmissionDate time.Time `db:"submission_date" json:"submission_date"`
}
