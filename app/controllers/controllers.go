// Package controllers holds the HTTP handlers. Controllers decode and
// validate input, call a service, and write the response envelope; all
// business rules live in the services.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/micromarket/pkg/auth"
	"github.com/shashiranjanraj/micromarket/pkg/response"
)

// currentUser pulls the authenticated user id out of the request context.
// Handlers behind the auth middleware can rely on it; the false branch only
// fires on a wiring mistake.
func currentUser(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		response.Unauthorized(w)
		return 0, false
	}
	return id, true
}

// paramID parses a positive integer URL parameter.
func paramID(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
