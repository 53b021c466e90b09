// Package handler contains the HTTP adapters. Mutating routes answer with a
// redirect carrying a one-line flash message; GET routes return the page's
// data as JSON (template rendering is outside this service). Every known
// failure is recovered here — nothing below this layer reaches the client
// as a crash or a structured error body.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/campuskit/leave-service/internal/adapters/middleware"
	"github.com/campuskit/leave-service/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("failed to write response", zap.Error(err))
	}
}

// redirect sends the browser back with a flash message attached.
func redirect(w http.ResponseWriter, r *http.Request, target, kind, message string) {
	if message != "" {
		middleware.SetFlash(w, kind, message)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// failRedirect maps a service error to a one-line message and redirects.
// Credential failures collapse into one generic message so the response never
// reveals which factor was wrong.
func failRedirect(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	target := r.Referer()
	if target == "" {
		target = fallback
	}

	var message string
	switch {
	case errors.Is(err, domain.ErrUnknownUser), errors.Is(err, domain.ErrInvalidCredential):
		message = "Invalid username or password"
	case errors.Is(err, domain.ErrValidation):
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		message = "Not found"
	case errors.Is(err, domain.ErrForbidden):
		message = "Unauthorized access"
	case errors.Is(err, domain.ErrAlreadyReviewed):
		message = "Leave request has already been reviewed"
	case errors.Is(err, domain.ErrNoSession):
		message = "You need to be logged in"
	default:
		zap.L().Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		message = "Something went wrong"
	}

	redirect(w, r, target, middleware.FlashError, message)
}

// pageData is the common envelope for GET page endpoints: the page payload
// plus any pending flash messages.
type pageData struct {
	Error   string `json:"error,omitempty"`
	Success string `json:"success,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writePage(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusOK, pageData{
		Error:   middleware.TakeFlash(w, r, middleware.FlashError),
		Success: middleware.TakeFlash(w, r, middleware.FlashSuccess),
		Data:    data,
	})
}

// NotFound renders the catch-all page for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Page not found"})
}
