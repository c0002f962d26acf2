// AngelaMos | 2026
// repository.go

package analytics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/carterperez-dev/leadtrack/internal/core"
	"github.com/carterperez-dev/leadtrack/internal/submission"
)

type GroupCount struct {
	Key   string `db:"key"   json:"key"`
	Count int    `db:"count" json:"count"`
}

type HourCount struct {
	Hour  int `db:"hour"  json:"hour"`
	Count int `db:"count" json:"count"`
}

type DailyCount struct {
	Date  string `db:"date"  json:"date"`
	Count int    `db:"count" json:"count"`
}

type StatusCount struct {
	Status     string  `db:"status"      json:"status"`
	Count      int     `db:"count"       json:"count"`
	AvgQuality float64 `db:"avg_quality" json:"avg_quality"`
}

type TopLocation struct {
	City       string               `db:"geo_city"    json:"city"`
	Region     string               `db:"geo_region"  json:"region"`
	Country    string               `db:"geo_country" json:"country"`
	Count      int                  `db:"count"       json:"count"`
	AvgQuality float64              `db:"avg_quality" json:"avg_quality"`
	Recent     []submission.Summary `db:"-"           json:"recent"`
}

type MapPoint struct {
	Latitude  float64              `db:"geo_latitude"  json:"lat"`
	Longitude float64              `db:"geo_longitude" json:"lng"`
	City      string               `db:"geo_city"      json:"city"`
	Region    string               `db:"geo_region"    json:"region"`
	Country   string               `db:"geo_country"   json:"country"`
	Count     int                  `db:"count"         json:"count"`
	Recent    []submission.Summary `db:"-"             json:"recent"`
}

const (
	topLocationLimit    = 10
	embeddedRecentLimit = 10
	topBrowserLimit     = 5
)

type Repository interface {
	CountAll(ctx context.Context) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	CountToday(ctx context.Context) (int, error)
	CountHighQuality(ctx context.Context, since time.Time) (int, error)
	AvgQuality(ctx context.Context, since time.Time) (float64, error)
	GroupByCountry(ctx context.Context, since time.Time) ([]GroupCount, error)
	GroupByDevice(ctx context.Context, since time.Time) ([]GroupCount, error)
	GroupByBrowser(ctx context.Context, since time.Time) ([]GroupCount, error)
	GroupByHour(ctx context.Context, since time.Time) ([]HourCount, error)
	Daily(ctx context.Context, since time.Time) ([]DailyCount, error)
	StatusCounts(ctx context.Context, since time.Time) ([]StatusCount, error)
	TopLocations(ctx context.Context, since time.Time) ([]TopLocation, error)
	MapPoints(ctx context.Context, since time.Time) ([]MapPoint, error)
	Recent(
		ctx context.Context,
		since time.Time,
		limit int,
	) ([]submission.Summary, error)
	ExportRows(
		ctx context.Context,
		params submission.ListParams,
	) ([]submission.Submission, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) count(
	ctx context.Context,
	query string,
	args ...any,
) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("analytics count: %w", err)
	}
	return n, nil
}

func (r *repository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM submissions`)
}

func (r *repository) CountSince(
	ctx context.Context,
	since time.Time,
) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM submissions WHERE submission_date >= $1`,
		since)
}

func (r *repository) CountToday(ctx context.Context) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*) FROM submissions
		WHERE submission_date >= date_trunc('day', NOW())`)
}

func (r *repository) CountHighQuality(
	ctx context.Context,
	since time.Time,
) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*) FROM submissions
		WHERE submission_date >= $1 AND quality_score >= 80`,
		since)
}

func (r *repository) AvgQuality(
	ctx context.Context,
	since time.Time,
) (float64, error) {
	var avg float64
	err := r.db.GetContext(ctx, &avg, `
		SELECT COALESCE(AVG(quality_score), 0) FROM submissions
		WHERE submission_date >= $1`, since)
	if err != nil {
		return 0, fmt.Errorf("average quality: %w", err)
	}
	return avg, nil
}

func (r *repository) groupBy(
	ctx context.Context,
	column string,
	since time.Time,
	limit int,
) ([]GroupCount, error) {
	query := fmt.Sprintf(`
		SELECT %s AS key, COUNT(*) AS count
		FROM submissions
		WHERE submission_date >= $1
		GROUP BY %s
		ORDER BY count DESC`, column, column)
	args := []any{since}

	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	groups := []GroupCount{}
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, fmt.Errorf("group by %s: %w", column, err)
	}

	return groups, nil
}

func (r *repository) GroupByCountry(
	ctx context.Context,
	since time.Time,
) ([]GroupCount, error) {
	return r.groupBy(ctx, "geo_country", since, 0)
}

func (r *repository) GroupByDevice(
	ctx context.Context,
	since time.Time,
) ([]GroupCount, error) {
	return r.groupBy(ctx, "device_type", since, 0)
}

func (r *repository) GroupByBrowser(
	ctx context.Context,
	since time.Time,
) ([]GroupCount, error) {
	return r.groupBy(ctx, "browser_family", since, topBrowserLimit)
}

func (r *repository) GroupByHour(
	ctx context.Context,
	since time.Time,
) ([]HourCount, error) {
	hours := []HourCount{}
	err := r.db.SelectContext(ctx, &hours, `
		SELECT EXTRACT(HOUR FROM submission_date)::int AS hour,
		       COUNT(*) AS count
		FROM submissions
		WHERE submission_date >= $1
		GROUP BY hour
		ORDER BY hour ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("group by hour: %w", err)
	}
	return hours, nil
}

func (r *repository) Daily(
	ctx context.Context,
	since time.Time,
) ([]DailyCount, error) {
	days := []DailyCount{}
	err := r.db.SelectContext(ctx, &days, `
		SELECT to_char(date_trunc('day', submission_date), 'YYYY-MM-DD')
		       AS date,
		       COUNT(*) AS count
		FROM submissions
		WHERE submission_date >= $1
		GROUP BY date
		ORDER BY date ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}
	return days, nil
}

func (r *repository) StatusCounts(
	ctx context.Context,
	since time.Time,
) ([]StatusCount, error) {
	counts := []StatusCount{}
	err := r.db.SelectContext(ctx, &counts, `
		SELECT status,
		       COUNT(*) AS count,
		       COALESCE(AVG(quality_score), 0) AS avg_quality
		FROM submissions
		WHERE submission_date >= $1
		GROUP BY status
		ORDER BY count DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	return counts, nil
}

// TopLocations returns the busiest (city, region, country) groups in
// the window, each carrying its most recent submissions. Two queries:
// the group ranking, then a windowed pull of per-group recent rows.
func (r *repository) TopLocations(
	ctx context.Context,
	since time.Time,
) ([]TopLocation, error) {
	locations := []TopLocation{}
	err := r.db.SelectContext(ctx, &locations, `
		SELECT geo_city, geo_region, geo_country,
		       COUNT(*) AS count,
		       COALESCE(AVG(quality_score), 0) AS avg_quality
		FROM submissions
		WHERE submission_date >= $1
		GROUP BY geo_city, geo_region, geo_country
		ORDER BY count DESC
		LIMIT $2`, since, topLocationLimit)
	if err != nil {
		return nil, fmt.Errorf("top locations: %w", err)
	}

	if len(locations) == 0 {
		return locations, nil
	}

	type rankedRow struct {
		submission.Summary
		RN int `db:"rn"`
	}

	rows := []rankedRow{}
	err = r.db.SelectContext(ctx, &rows, `
		WITH top_locations AS (
			SELECT geo_city, geo_region, geo_country
			FROM submissions
			WHERE submission_date >= $1
			GROUP BY geo_city, geo_region, geo_country
			ORDER BY COUNT(*) DESC
			LIMIT $2
		), ranked AS (
			SELECT s.id, s.fname, s.lname, s.email,
			       s.geo_city, s.geo_region, s.geo_country,
			       s.status, s.quality_score, s.submission_date,
			       ROW_NUMBER() OVER (
			           PARTITION BY s.geo_city, s.geo_region, s.geo_country
			           ORDER BY s.submission_date DESC) AS rn
			FROM submissions s
			JOIN top_locations t
			  ON s.geo_city = t.geo_city
			 AND s.geo_region = t.geo_region
			 AND s.geo_country = t.geo_country
			WHERE s.submission_date >= $1
		)
		SELECT * FROM ranked WHERE rn <= $3`,
		since, topLocationLimit, embeddedRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("top location summaries: %w", err)
	}

	byKey := map[string]*TopLocation{}
	for i := range locations {
		loc := &locations[i]
		loc.Recent = []submission.Summary{}
		byKey[loc.City+"|"+loc.Region+"|"+loc.Country] = loc
	}
	for _, row := range rows {
		key := row.GeoCity + "|" + row.GeoRegion + "|" + row.GeoCountry
		if loc, ok := byKey[key]; ok {
			loc.Recent = append(loc.Recent, row.Summary)
		}
	}

	return locations, nil
}

// MapPoints groups windowed submissions by exact coordinates, each
// point carrying its most recent submissions. Same two-query shape as
// TopLocations, partitioned by the coordinate pair.
func (r *repository) MapPoints(
	ctx context.Context,
	since time.Time,
) ([]MapPoint, error) {
	points := []MapPoint{}
	err := r.db.SelectContext(ctx, &points, `
		SELECT geo_latitude, geo_longitude, geo_city, geo_region,
		       geo_country,
		       COUNT(*) AS count
		FROM submissions
		WHERE submission_date >= $1
		  AND NOT (geo_latitude = 0 AND geo_longitude = 0)
		GROUP BY geo_latitude, geo_longitude, geo_city, geo_region,
		         geo_country
		ORDER BY count DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("map points: %w", err)
	}

	if len(points) == 0 {
		return points, nil
	}

	type rankedRow struct {
		submission.Summary
		Latitude  float64 `db:"geo_latitude"`
		Longitude float64 `db:"geo_longitude"`
		RN        int     `db:"rn"`
	}

	rows := []rankedRow{}
	err = r.db.SelectContext(ctx, &rows, `
		WITH ranked AS (
			SELECT id, fname, lname, email,
			       geo_city, geo_region, geo_country,
			       status, quality_score, submission_date,
			       geo_latitude, geo_longitude,
			       ROW_NUMBER() OVER (
			           PARTITION BY geo_latitude, geo_longitude
			           ORDER BY submission_date DESC) AS rn
			FROM submissions
			WHERE submission_date >= $1
			  AND NOT (geo_latitude = 0 AND geo_longitude = 0)
		)
		SELECT * FROM ranked WHERE rn <= $2`,
		since, embeddedRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("map point summaries: %w", err)
	}

	coordKey := func(lat, lng float64) string {
		return strconv.FormatFloat(lat, 'f', -1, 64) + "|" +
			strconv.FormatFloat(lng, 'f', -1, 64)
	}

	byKey := map[string]*MapPoint{}
	for i := range points {
		p := &points[i]
		p.Recent = []submission.Summary{}
		byKey[coordKey(p.Latitude, p.Longitude)] = p
	}
	for _, row := range rows {
		if p, ok := byKey[coordKey(row.Latitude, row.Longitude)]; ok {
			p.Recent = append(p.Recent, row.Summary)
		}
	}

	return points, nil
}

func (r *repository) Recent(
	ctx context.Context,
	since time.Time,
	limit int,
) ([]submission.Summary, error) {
	summaries := []submission.Summary{}
	err := r.db.SelectContext(ctx, &summaries, `
		SELECT id, fname, lname, email, geo_city, geo_region, geo_country,
		       status, quality_score, submission_date
		FROM submissions
		WHERE status != 'deleted' AND submission_date >= $1
		ORDER BY submission_date DESC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("recent submissions: %w", err)
	}

	return summaries, nil
}

func (r *repository) ExportRows(
	ctx context.Context,
	params submission.ListParams,
) ([]submission.Submission, error) {
	where, args := submission.BuildFilter(params)

	rows := []submission.Submission{}
	query := "SELECT * FROM submissions" + where +
		" ORDER BY submission_date DESC"
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("export rows: %w", err)
	}

	return rows, nil
}
