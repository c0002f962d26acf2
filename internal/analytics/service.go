// AngelaMos | 2026
// service.go

package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/carterperez-dev/leadtrack/internal/core"
	"github.com/carterperez-dev/leadtrack/internal/submission"
)

const (
	defaultWindowDays    = 30
	dashboardRecentLimit = 5
)

type Totals struct {
	AllTime     int     `json:"all_time"`
	Window      int     `json:"window"`
	Today       int     `json:"today"`
	QualityRate float64 `json:"quality_rate"`
	AvgQuality  float64 `json:"avg_quality"`
}

type DashboardResponse struct {
	WindowDays   int                  `json:"window_days"`
	Totals       Totals               `json:"totals"`
	ByCountry    []GroupCount         `json:"by_country"`
	ByDevice     []GroupCount         `json:"by_device"`
	ByStatus     []StatusCount        `json:"by_status"`
	ByBrowser    []GroupCount         `json:"by_browser"`
	ByHour       []HourCount          `json:"by_hour"`
	Daily        []DailyCount         `json:"daily"`
	TopLocations []TopLocation        `json:"top_locations"`
	Recent       []submission.Summary `json:"recent"`
}

type FunnelStage struct {
	Stage          string  `json:"stage"`
	Count          int     `json:"count"`
	ConversionRate float64 `json:"conversion_rate"`
	AvgQuality     float64 `json:"avg_quality"`
}

type FunnelResponse struct {
	WindowDays int           `json:"window_days"`
	Stages     []FunnelStage `json:"stages"`
	Total      int           `json:"total"`
}

type MapDataResponse struct {
	Points []MapPoint `json:"points"`
	Total  int        `json:"total"`
}

type Service interface {
	Dashboard(ctx context.Context, days int) (*DashboardResponse, error)
	Funnel(ctx context.Context, days int) (*FunnelResponse, error)
	MapData(ctx context.Context, days int) (*MapDataResponse, error)
	Export(
		ctx context.Context,
		params submission.ListParams,
	) ([]submission.Submission, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func windowStart(days int) time.Time {
	if days <= 0 {
		days = defaultWindowDays
	}
	return time.Now().AddDate(0, 0, -days)
}

func (s *service) Dashboard(
	ctx context.Context,
	days int,
) (*DashboardResponse, error) {
	if days <= 0 {
		days = defaultWindowDays
	}
	since := windowStart(days)

	allTime, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	window, err := s.repo.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}
	today, err := s.repo.CountToday(ctx)
	if err != nil {
		return nil, err
	}
	highQuality, err := s.repo.CountHighQuality(ctx, since)
	if err != nil {
		return nil, err
	}
	avgQuality, err := s.repo.AvgQuality(ctx, since)
	if err != nil {
		return nil, err
	}

	byCountry, err := s.repo.GroupByCountry(ctx, since)
	if err != nil {
		return nil, err
	}
	byDevice, err := s.repo.GroupByDevice(ctx, since)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.StatusCounts(ctx, since)
	if err != nil {
		return nil, err
	}
	byBrowser, err := s.repo.GroupByBrowser(ctx, since)
	if err != nil {
		return nil, err
	}
	byHour, err := s.repo.GroupByHour(ctx, since)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.Daily(ctx, since)
	if err != nil {
		return nil, err
	}
	topLocations, err := s.repo.TopLocations(ctx, since)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.Recent(ctx, since, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	qualityRate := 0.0
	if window > 0 {
		qualityRate = roundRate(float64(highQuality) / float64(window) * 100)
	}

	return &DashboardResponse{
		WindowDays: days,
		Totals: Totals{
			AllTime:     allTime,
			Window:      window,
			Today:       today,
			QualityRate: qualityRate,
			AvgQuality:  roundRate(avgQuality),
		},
		ByCountry:    byCountry,
		ByDevice:     byDevice,
		ByStatus:     byStatus,
		ByBrowser:    byBrowser,
		ByHour:       byHour,
		Daily:        daily,
		TopLocations: topLocations,
		Recent:       recent,
	}, nil
}

// funnelStages is the fixed reporting order. Conversion compares stage
// populations, not per-lead progression; rejected and deleted are not
// part of the funnel.
var funnelStages = []string{
	submission.StatusPending,
	submission.StatusProcessed,
	submission.StatusContacted,
	submission.StatusQualified,
}

// BuildFunnel computes each stage's conversion rate against the
// previous stage's count. The first stage is fixed at 100%; a stage
// following an empty one reports 0. avgs may be nil.
func BuildFunnel(counts map[string]int, avgs map[string]float64) []FunnelStage {
	stages := make([]FunnelStage, 0, len(funnelStages))

	prev := 0
	for i, name := range funnelStages {
		count := counts[name]

		rate := 0.0
		switch {
		case i == 0:
			rate = 100
		case prev > 0:
			rate = roundRate(float64(count) / float64(prev) * 100)
		}

		stages = append(stages, FunnelStage{
			Stage:          name,
			Count:          count,
			ConversionRate: rate,
			AvgQuality:     roundRate(avgs[name]),
		})
		prev = count
	}

	return stages
}

func (s *service) Funnel(ctx context.Context, days int) (*FunnelResponse, error) {
	if days <= 0 {
		days = defaultWindowDays
	}

	statusCounts, err := s.repo.StatusCounts(ctx, windowStart(days))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(statusCounts))
	avgs := make(map[string]float64, len(statusCounts))
	for _, sc := range statusCounts {
		counts[sc.Status] = sc.Count
		avgs[sc.Status] = sc.AvgQuality
	}

	stages := BuildFunnel(counts, avgs)

	total := 0
	for _, stage := range stages {
		total += stage.Count
	}

	return &FunnelResponse{
		WindowDays: days,
		Stages:     stages,
		Total:      total,
	}, nil
}

func (s *service) MapData(
	ctx context.Context,
	days int,
) (*MapDataResponse, error) {
	points, err := s.repo.MapPoints(ctx, windowStart(days))
	if err != nil {
		return nil, err
	}

	total := 0
	for _, p := range points {
		total += p.Count
	}

	return &MapDataResponse{Points: points, Total: total}, nil
}

func (s *service) Export(
	ctx context.Context,
	params submission.ListParams,
) ([]submission.Submission, error) {
	rows, err := s.repo.ExportRows(ctx, params)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no submissions match: %w", core.ErrNotFound)
	}

	return rows, nil
}

func roundRate(v float64) float64 {
	return math.Round(v*100) / 100
}
