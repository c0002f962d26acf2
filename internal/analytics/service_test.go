// AngelaMos | 2026
// service_test.go

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/carterperez-dev/leadtrack/internal/submission"
)

// fakeRepo records the window bounds handed to the status and recent
// queries; everything else returns zero values.
type fakeRepo struct {
	Repository
	statusCounts []StatusCount
	since        time.Time
	recentSince  time.Time
}

func (f *fakeRepo) StatusCounts(
	_ context.Context,
	since time.Time,
) ([]StatusCount, error) {
	f.since = since
	return f.statusCounts, nil
}

func (f *fakeRepo) Recent(
	_ context.Context,
	since time.Time,
	_ int,
) ([]submission.Summary, error) {
	f.recentSince = since
	return nil, nil
}

func (f *fakeRepo) CountAll(context.Context) (int, error) { return 0, nil }

func (f *fakeRepo) CountSince(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (f *fakeRepo) CountToday(context.Context) (int, error) { return 0, nil }

func (f *fakeRepo) CountHighQuality(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (f *fakeRepo) AvgQuality(context.Context, time.Time) (float64, error) {
	return 0, nil
}

func (f *fakeRepo) GroupByCountry(
	context.Context,
	time.Time,
) ([]GroupCount, error) {
	return nil, nil
}

func (f *fakeRepo) GroupByDevice(
	context.Context,
	time.Time,
) ([]GroupCount, error) {
	return nil, nil
}

func (f *fakeRepo) GroupByBrowser(
	context.Context,
	time.Time,
) ([]GroupCount, error) {
	return nil, nil
}

func (f *fakeRepo) GroupByHour(
	context.Context,
	time.Time,
) ([]HourCount, error) {
	return nil, nil
}

func (f *fakeRepo) Daily(context.Context, time.Time) ([]DailyCount, error) {
	return nil, nil
}

func (f *fakeRepo) TopLocations(
	context.Context,
	time.Time,
) ([]TopLocation, error) {
	return nil, nil
}

func TestFunnelWindowsStatusCounts(t *testing.T) {
	repo := &fakeRepo{statusCounts: []StatusCount{
		{Status: "pending", Count: 8, AvgQuality: 70},
		{Status: "processed", Count: 4, AvgQuality: 90},
	}}
	svc := NewService(repo)

	resp, err := svc.Funnel(context.Background(), 7)
	if err != nil {
		t.Fatalf("funnel: %v", err)
	}

	if repo.since.IsZero() {
		t.Fatal("status counts were not given a window bound")
	}
	wantStart := time.Now().AddDate(0, 0, -7)
	if diff := repo.since.Sub(wantStart); diff < -time.Minute || diff > time.Minute {
		t.Errorf("window bound = %v, want about %v", repo.since, wantStart)
	}

	if resp.WindowDays != 7 {
		t.Errorf("window days = %d, want 7", resp.WindowDays)
	}
	if resp.Total != 12 {
		t.Errorf("total = %d, want 12", resp.Total)
	}
	if resp.Stages[1].ConversionRate != 50 {
		t.Errorf("processed rate = %v, want 50", resp.Stages[1].ConversionRate)
	}
}

func TestDashboardWindowsStatusAndRecent(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	if _, err := svc.Dashboard(context.Background(), 14); err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	wantStart := time.Now().AddDate(0, 0, -14)
	for name, got := range map[string]time.Time{
		"status counts": repo.since,
		"recent feed":   repo.recentSince,
	} {
		if got.IsZero() {
			t.Errorf("%s was not given a window bound", name)
			continue
		}
		if diff := got.Sub(wantStart); diff < -time.Minute || diff > time.Minute {
			t.Errorf("%s bound = %v, want about %v", name, got, wantStart)
		}
	}
}

func TestFunnelDefaultsWindow(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	resp, err := svc.Funnel(context.Background(), 0)
	if err != nil {
		t.Fatalf("funnel: %v", err)
	}

	if resp.WindowDays != defaultWindowDays {
		t.Errorf("window days = %d, want %d", resp.WindowDays, defaultWindowDays)
	}
}

func TestBuildFunnelConversionRates(t *testing.T) {
	counts := map[string]int{
		"pending":   100,
		"processed": 40,
		"contacted": 10,
		"qualified": 2,
	}

	stages := BuildFunnel(counts, nil)

	want := []FunnelStage{
		{Stage: "pending", Count: 100, ConversionRate: 100},
		{Stage: "processed", Count: 40, ConversionRate: 40},
		{Stage: "contacted", Count: 10, ConversionRate: 25},
		{Stage: "qualified", Count: 2, ConversionRate: 20},
	}

	if len(stages) != len(want) {
		t.Fatalf("got %d stages, want %d", len(stages), len(want))
	}
	for i, stage := range stages {
		if stage != want[i] {
			t.Errorf("stage %d = %+v, want %+v", i, stage, want[i])
		}
	}
}

func TestBuildFunnelEmpty(t *testing.T) {
	stages := BuildFunnel(map[string]int{}, nil)

	if len(stages) != 4 {
		t.Fatalf("got %d stages, want 4", len(stages))
	}
	if stages[0].ConversionRate != 100 {
		t.Errorf("first stage rate = %v, want 100", stages[0].ConversionRate)
	}
	for i, stage := range stages[1:] {
		if stage.Count != 0 || stage.ConversionRate != 0 {
			t.Errorf("stage %d = %+v, want zeroes", i+1, stage)
		}
	}
}

func TestBuildFunnelIgnoresNonFunnelStatuses(t *testing.T) {
	counts := map[string]int{
		"pending":  10,
		"rejected": 500,
		"deleted":  300,
	}

	stages := BuildFunnel(counts, nil)

	for _, stage := range stages {
		if stage.Stage == "rejected" || stage.Stage == "deleted" {
			t.Errorf("non-funnel status %q appeared", stage.Stage)
		}
	}
}

func TestBuildFunnelCarriesAvgQuality(t *testing.T) {
	counts := map[string]int{"pending": 4, "processed": 2}
	avgs := map[string]float64{"pending": 62.5, "processed": 88.333}

	stages := BuildFunnel(counts, avgs)

	if stages[0].AvgQuality != 62.5 {
		t.Errorf("pending avg = %v, want 62.5", stages[0].AvgQuality)
	}
	if stages[1].AvgQuality != 88.33 {
		t.Errorf("processed avg = %v, want 88.33", stages[1].AvgQuality)
	}
}

func TestBuildFunnelZeroIntermediateStage(t *testing.T) {
	counts := map[string]int{
		"pending":   10,
		"processed": 0,
		"contacted": 5,
	}

	stages := BuildFunnel(counts, nil)

	// contacted follows an empty stage; no division happens
	if stages[2].ConversionRate != 0 {
		t.Errorf("rate after empty stage = %v, want 0",
			stages[2].ConversionRate)
	}
}

func TestRoundRate(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{33.33333, 33.33},
		{66.666, 66.67},
		{100, 100},
		{0, 0},
	}

	for _, tt := range tests {
		if got := roundRate(tt.in); got != tt.want {
			t.Errorf("roundRate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
