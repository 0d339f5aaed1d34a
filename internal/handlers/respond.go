// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers exposes the content core over a JSON API consumed by
// the SPA. Handlers stay thin: decode, resolve the principal from the
// request context, call the service, encode.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"iturinews/internal/apperr"
)

// errorResponse is the JSON body for every failed request. Kind lets the
// caller distinguish "log in" from "you lack permission" from "that no
// longer exists" without parsing messages.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "validation"})
	case apperr.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: "not_found"})
	case apperr.IsUnauthorized(err):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Kind: "unauthorized"})
	case apperr.IsForbidden(err):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error(), Kind: "forbidden"})
	case apperr.IsAuthentication(err):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Kind: "authentication"})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Kind: "internal"})
	}
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}
