// AngelaMos | 2026
// handler.go

package ingest

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/leadtrack/internal/config"
	"github.com/carterperez-dev/leadtrack/internal/core"
)

type Handler struct {
	service *Service
	cfg     config.IngestConfig
	logger  *slog.Logger
}

func NewHandler(
	service *Service,
	cfg config.IngestConfig,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Capture)
}

type captureResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId,omitempty"`
}

// Capture is the public ingestion endpoint. It answers 200 whenever a
// lead was persisted in any form; 5xx only when even the minimal
// fallback save failed. The submitting form retries on its own, so
// nothing here is retried server side.
func (h *Handler) Capture(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		core.BadRequest(w, "unreadable request body")
		return
	}

	form, err := DecodeForm(body)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid form payload")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	// the submitting page is the best guess for both when the form
	// didn't carry them
	if form.OfferURL == "" {
		form.OfferURL = r.Referer()
	}
	if form.Referrer == "" {
		form.Referrer = r.Referer()
	}

	meta := RequestMeta{
		IP:        ClientIP(r),
		UserAgent: r.UserAgent(),
	}

	sub, err := h.service.Process(r.Context(), form, meta)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	h.logger.Info("lead captured",
		slog.String("submission_id", sub.ID),
		slog.String("email", sub.Email),
		slog.String("city", sub.GeoCity),
		slog.String("country", sub.GeoCountry),
		slog.Int("quality_score", sub.QualityScore),
		slog.String("ip", meta.IP),
	)

	go h.service.Forward(body, r.Header.Get("Authorization"))

	core.OK(w, captureResponse{
		Status:       "success",
		Message:      "submission received",
		SubmissionID: sub.ID,
	})
}
