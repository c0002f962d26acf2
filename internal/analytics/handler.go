// AngelaMos | 2026
// handler.go

package analytics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/leadtrack/internal/core"
	"github.com/carterperez-dev/leadtrack/internal/middleware"
	"github.com/carterperez-dev/leadtrack/internal/submission"
	"github.com/carterperez-dev/leadtrack/internal/user"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermViewAnalytics))

			r.Get("/dashboard", h.Dashboard)
			r.Get("/funnel", h.Funnel)
			r.Get("/map-data", h.MapData)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermExportData))

			r.Get("/export/csv", h.ExportCSV)
			r.Get("/export/excel", h.ExportExcel)
		})
	})
}

func windowDays(r *http.Request) int {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days <= 0 {
		return defaultWindowDays
	}
	return days
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Dashboard(r.Context(), windowDays(r))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Funnel(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Funnel(r.Context(), windowDays(r))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) MapData(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.MapData(r.Context(), windowDays(r))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) exportRows(
	w http.ResponseWriter,
	r *http.Request,
) []submission.Submission {
	rows, err := h.service.Export(r.Context(), submission.ParseListParams(r))
	if err != nil {
		core.JSONError(w, err)
		return nil
	}
	return rows
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rows := h.exportRows(w, r)
	if rows == nil {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+ExportFilename("csv")+`"`)

	if err := WriteCSV(w, rows); err != nil {
		core.InternalServerError(w, err)
	}
}

func (h *Handler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	rows := h.exportRows(w, r)
	if rows == nil {
		return
	}

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+ExportFilename("xlsx")+`"`)

	if err := WriteExcel(w, rows); err != nil {
		core.InternalServerError(w, err)
	}
}
