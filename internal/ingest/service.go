// AngelaMos | 2026
// service.go

package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/leadtrack/internal/config"
	"github.com/carterperez-dev/leadtrack/internal/submission"
)

// Store is the slice of the submission repository ingestion needs.
type Store interface {
	Insert(ctx context.Context, sub *submission.Submission) error
}

// RequestMeta carries the technical context of the submitting request.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type Service struct {
	store    Store
	enricher *Enricher
	cfg      config.IngestConfig
	client   *http.Client
	logger   *slog.Logger
}

func NewService(
	store Store,
	enricher *Enricher,
	cfg config.IngestConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		enricher: enricher,
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.ForwardTimeout},
		logger:   logger,
	}
}

// Process turns one decoded form into a stored submission. Enrichment
// failures degrade to sentinel values; a store failure on the enriched
// record falls back to a minimal save so a submitted lead always
// leaves a persisted trace.
func (s *Service) Process(
	ctx context.Context,
	form *FormData,
	meta RequestMeta,
) (*submission.Submission, error) {
	now := time.Now()

	sub := Normalize(form, now)
	sub.ID = uuid.New().String()
	sub.IPAddress = meta.IP

	ParseDevice(meta.UserAgent, &sub)
	s.enricher.Enrich(ctx, meta.IP, &sub)

	sub.QualityScore = submission.CalculateQualityScore(&sub)

	if err := s.store.Insert(ctx, &sub); err != nil {
		s.logger.Error("enriched save failed, falling back to minimal record",
			slog.String("submission_id", sub.ID),
			slog.String("error", err.Error()),
		)
		return s.saveMinimal(ctx, form, meta, now)
	}

	return &sub, nil
}

func (s *Service) saveMinimal(
	ctx context.Context,
	form *FormData,
	meta RequestMeta,
	now time.Time,
) (*submission.Submission, error) {
	sub := Normalize(form, now)
	sub.ID = uuid.New().String()
	sub.IPAddress = meta.IP
	sub.UserAgent = meta.UserAgent

	applyLocation(&Location{}, &sub)
	sub.BrowserFamily = submission.UnknownSentinel
	sub.OSFamily = submission.UnknownSentinel
	sub.DeviceFamily = submission.UnknownSentinel
	sub.DeviceType = "desktop"

	sub.QualityScore = submission.CalculateQualityScore(&sub)

	if err := s.store.Insert(ctx, &sub); err != nil {
		return nil, fmt.Errorf("minimal save: %w", err)
	}

	return &sub, nil
}

// Forward relays the raw payload to the configured upstream, passing
// the submitter's Authorization header along when present. Best
// effort: failures are logged and never affect the submitter's
// response.
func (s *Service) Forward(payload []byte, authorization string) {
	if s.cfg.ForwardURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(
		context.Background(), s.cfg.ForwardTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.cfg.ForwardURL,
		bytes.NewReader(payload),
	)
	if err != nil {
		s.logger.Warn("build forward request failed",
			slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("forward to upstream failed",
			slog.String("url", s.cfg.ForwardURL),
			slog.String("error", err.Error()),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		s.logger.Warn("upstream rejected forwarded lead",
			slog.String("url", s.cfg.ForwardURL),
			slog.Int("status", resp.StatusCode),
		)
	}
}
