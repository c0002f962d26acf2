// AngelaMos | 2026
// service_test.go

package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/carterperez-dev/leadtrack/internal/config"
	"github.com/carterperez-dev/leadtrack/internal/submission"
)

type fakeStore struct {
	saved    []submission.Submission
	failures int
}

func (f *fakeStore) Insert(
	_ context.Context,
	sub *submission.Submission,
) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("connection reset")
	}
	f.saved = append(f.saved, *sub)
	return nil
}

func newTestService(store *fakeStore) *Service {
	enricher := NewEnricher(nil, nil, discardLogger())
	return NewService(store, enricher, config.IngestConfig{}, discardLogger())
}

func TestProcessStoresEnrichedSubmission(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	form := &FormData{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "Jane@Doe.com",
		Phone:     "(555) 123-4567",
	}
	meta := RequestMeta{
		IP:        "203.0.113.7",
		UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Mobile Safari",
	}

	sub, err := svc.Process(context.Background(), form, meta)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(store.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(store.saved))
	}
	if sub.ID == "" {
		t.Error("no id assigned")
	}
	if sub.Email != "jane@doe.com" {
		t.Errorf("Email = %q", sub.Email)
	}
	if sub.DeviceType != "mobile" {
		t.Errorf("DeviceType = %q, want mobile", sub.DeviceType)
	}
	if sub.QualityScore != submission.CalculateQualityScore(sub) {
		t.Error("stored score does not match recomputation")
	}
}

func TestProcessFallsBackToMinimalSave(t *testing.T) {
	store := &fakeStore{failures: 1}
	svc := newTestService(store)

	form := &FormData{FirstName: "Jane", LastName: "Doe", Email: "j@d.com"}
	meta := RequestMeta{IP: "203.0.113.7", UserAgent: "Mozilla/5.0"}

	sub, err := svc.Process(context.Background(), form, meta)
	if err != nil {
		t.Fatalf("Process should fall back, got error: %v", err)
	}

	if len(store.saved) != 1 {
		t.Fatalf("saved %d records, want 1 minimal record", len(store.saved))
	}
	if sub.FirstName != "Jane" || sub.Email != "j@d.com" {
		t.Errorf("submitted fields lost in fallback: %+v", sub)
	}
	if sub.GeoCountry != submission.UnknownSentinel {
		t.Errorf("fallback GeoCountry = %q, want sentinel", sub.GeoCountry)
	}
}

func TestProcessSurfacesTotalFailure(t *testing.T) {
	store := &fakeStore{failures: 2}
	svc := newTestService(store)

	_, err := svc.Process(
		context.Background(),
		&FormData{FirstName: "Jane"},
		RequestMeta{IP: "203.0.113.7"},
	)
	if err == nil {
		t.Fatal("expected error when both saves fail")
	}
	if len(store.saved) != 0 {
		t.Errorf("saved %d records, want 0", len(store.saved))
	}
}
