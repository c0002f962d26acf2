// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/leadtrack/internal/config"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(data)
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, MessageResponse{Message: message})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "authentication required"
	}
	WriteJSON(w, http.StatusUnauthorized, MessageResponse{Message: message})
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "insufficient permissions"
	}
	WriteJSON(w, http.StatusForbidden, MessageResponse{Message: message})
}

func NotFound(w http.ResponseWriter, resource string) {
	WriteJSON(w, http.StatusNotFound, MessageResponse{
		Message: fmt.Sprintf("%s not found", resource),
	})
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)

	message := "internal server error"
	if cfg := config.Get(); cfg != nil && !cfg.IsProduction() && err != nil {
		message = err.Error()
	}

	WriteJSON(w, http.StatusInternalServerError, MessageResponse{
		Message: message,
	})
}

// JSONError maps an error to its HTTP response. AppErrors carry their
// own status and message; bare sentinels get the taxonomy's defaults.
// Unauthorized stays a fixed string so login failures never reveal
// whether the account exists.
func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.Status, MessageResponse{Message: appErr.Message})
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		NotFound(w, "resource")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrDuplicateKey):
		BadRequest(w, err.Error())
	case errors.Is(err, ErrTokenExpired):
		JSONError(w, TokenExpiredError())
	case errors.Is(err, ErrTokenInvalid):
		JSONError(w, TokenInvalidError())
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(w, "invalid credentials")
	case errors.Is(err, ErrForbidden):
		Forbidden(w, "")
	default:
		InternalServerError(w, err)
	}
}

func FormatValidationError(err error) string {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return "invalid request"
	}

	parts := make([]string, 0, len(valErrs))
	for _, fe := range valErrs {
		switch fe.Tag() {
		case "required":
			parts = append(
				parts,
				fmt.Sprintf("%s is required", strings.ToLower(fe.Field())),
			)
		case "email":
			parts = append(
				parts,
				fmt.Sprintf("%s must be a valid email", strings.ToLower(fe.Field())),
			)
		case "oneof":
			parts = append(parts, fmt.Sprintf(
				"%s must be one of: %s",
				strings.ToLower(fe.Field()),
				fe.Param(),
			))
		case "min", "max":
			parts = append(parts, fmt.Sprintf(
				"%s fails %s=%s constraint",
				strings.ToLower(fe.Field()),
				fe.Tag(),
				fe.Param(),
			))
		default:
			parts = append(
				parts,
				fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())),
			)
		}
	}

	return strings.Join(parts, "; ")
}
