// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/leadtrack/internal/core"
	"github.com/carterperez-dev/leadtrack/internal/middleware"
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

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/auth/verify", h.Verify)
	r.Put("/auth/change-password", h.ChangePassword)
	r.Post("/auth/logout", h.Logout)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

// Verify reports whether the presented token maps to a live account.
// The authenticator middleware has already done the work by the time
// this runs.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "authentication required")
		return
	}

	core.OK(w, VerifyResponse{
		Valid: true,
		User: UserInfo{
			ID:          identity.UserID,
			Username:    identity.Username,
			Email:       identity.Email,
			Role:        identity.Role,
			Permissions: identity.Permissions,
		},
	})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, req); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, core.MessageResponse{Message: "password updated"})
}

// Logout is stateless. Tokens stay valid until expiry; the endpoint
// exists so clients have a uniform place to clear their session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	core.OK(w, core.MessageResponse{Message: "logged out"})
}
