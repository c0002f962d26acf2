// AngelaMos | 2026
// geo_test.go

package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/carterperez-dev/leadtrack/internal/submission"
)

type stubResolver struct {
	loc *Location
	err error
}

func (s *stubResolver) Resolve(context.Context, string) (*Location, error) {
	return s.loc, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMergeLocationsFieldPrecedence(t *testing.T) {
	base := &Location{
		Country:     "United States",
		CountryCode: "US",
		Region:      "Texas",
		City:        "Austin",
		Latitude:    30.26,
		Longitude:   -97.74,
		Timezone:    "America/Chicago",
	}
	overlay := &Location{
		City: "Round Rock",
		Zip:  "78664",
		ISP:  "Example Telecom",
	}

	merged := mergeLocations(base, overlay)

	if merged.City != "Round Rock" {
		t.Errorf("City = %q, overlay should win", merged.City)
	}
	if merged.Country != "United States" || merged.Region != "Texas" {
		t.Error("base fields lost where overlay was empty")
	}
	if merged.Latitude != 30.26 || merged.Longitude != -97.74 {
		t.Error("coordinates replaced by zero overlay values")
	}
	if merged.ISP != "Example Telecom" || merged.Zip != "78664" {
		t.Error("overlay-only fields missing")
	}
}

func TestMergeLocationsCoordinatesMoveTogether(t *testing.T) {
	base := &Location{Latitude: 30.26, Longitude: -97.74}
	overlay := &Location{Latitude: 40.71, Longitude: 0}

	merged := mergeLocations(base, overlay)

	if merged.Latitude != 40.71 || merged.Longitude != 0 {
		t.Errorf("coordinates = %v,%v, want overlay pair",
			merged.Latitude, merged.Longitude)
	}
}

func TestEnrichSentinelsWhenNothingResolves(t *testing.T) {
	enricher := NewEnricher(nil, nil, discardLogger())

	var sub submission.Submission
	enricher.Enrich(context.Background(), "203.0.113.7", &sub)

	if sub.GeoCountry != submission.UnknownSentinel {
		t.Errorf("GeoCountry = %q, want sentinel", sub.GeoCountry)
	}
	if sub.GeoCountryCode != "XX" {
		t.Errorf("GeoCountryCode = %q, want XX", sub.GeoCountryCode)
	}
	if sub.GeoCity != submission.UnknownSentinel {
		t.Errorf("GeoCity = %q, want sentinel", sub.GeoCity)
	}
}

func TestEnrichAPIFailureKeepsOfflineData(t *testing.T) {
	offline := &stubResolver{loc: &Location{
		Country: "United States", CountryCode: "US", City: "Austin",
	}}
	api := &stubResolver{err: errors.New("upstream timeout")}

	enricher := NewEnricher(offline, api, discardLogger())

	var sub submission.Submission
	enricher.Enrich(context.Background(), "203.0.113.7", &sub)

	if sub.GeoCountry != "United States" || sub.GeoCity != "Austin" {
		t.Errorf("offline data lost on api failure: %q/%q",
			sub.GeoCountry, sub.GeoCity)
	}
}

func TestEnrichSkipsAPIForLoopback(t *testing.T) {
	offline := &stubResolver{err: errors.New("not in database")}
	api := &stubResolver{loc: &Location{Country: "Shouldnotland"}}

	enricher := NewEnricher(offline, api, discardLogger())

	var sub submission.Submission
	enricher.Enrich(context.Background(), "127.0.0.1", &sub)

	if sub.GeoCountry == "Shouldnotland" {
		t.Error("api overlay applied for loopback address")
	}
}

func TestEnrichAPIOverlaysOffline(t *testing.T) {
	offline := &stubResolver{loc: &Location{
		Country: "United States", CountryCode: "US", City: "Austin",
	}}
	api := &stubResolver{loc: &Location{
		City: "Dallas", ISP: "Example Telecom",
	}}

	enricher := NewEnricher(offline, api, discardLogger())

	var sub submission.Submission
	enricher.Enrich(context.Background(), "203.0.113.7", &sub)

	if sub.GeoCity != "Dallas" {
		t.Errorf("GeoCity = %q, want api overlay", sub.GeoCity)
	}
	if sub.GeoCountry != "United States" {
		t.Errorf("GeoCountry = %q, want offline value", sub.GeoCountry)
	}
	if sub.GeoISP != "Example Telecom" {
		t.Errorf("GeoISP = %q", sub.GeoISP)
	}
}
