// Package response writes the JSON envelope every endpoint speaks:
// {"status": ..., "message": ..., "data": ..., "errors": ...}.
package response

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/micromarket/pkg/apperr"
	"github.com/shashiranjanraj/micromarket/pkg/logger"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 400 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusBadRequest, envelope{
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// AppError maps a service error onto the taxonomy and writes it.
// Internal errors are logged with their cause; the caller only ever sees
// the generic message.
func AppError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	if appErr.Kind == apperr.Internal {
		logger.WithCtx(ctx).Error("internal error", "error", appErr.Error())
		Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	Error(w, appErr.Status(), appErr.Message)
}
