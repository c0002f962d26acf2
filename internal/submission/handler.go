// AngelaMos | 2026
// handler.go

package submission

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/leadtrack/internal/core"
	"github.com/carterperez-dev/leadtrack/internal/middleware"
	"github.com/carterperez-dev/leadtrack/internal/user"
)

type Handler struct {
	service  Service
	validate *validator.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/submissions", func(r chi.Router) {
		r.Use(middleware.RequirePermission(user.PermViewSubmissions))

		r.Get("/", h.List)
		r.Get("/recent/summary", h.RecentSummary)
		r.Get("/location/stats", h.LocationStats)
		r.Patch("/bulk/update", h.BulkUpdate)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Patch("/{id}/notes", h.AddNote)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context(), ParseListParams(r))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, sub)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sub, err := h.service.UpdateStatus(
		r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, sub)
}

func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	authorID := middleware.GetUserID(r.Context())

	sub, err := h.service.AddNote(
		r.Context(), chi.URLParam(r, "id"), req.Content, authorID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, sub)
}

func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	modified, err := h.service.BulkUpdate(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, BulkUpdateResponse{Modified: modified})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actorID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) RecentSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.RecentSummary(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, summaries)
}

func (h *Handler) LocationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.LocationStats(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, stats)
}
