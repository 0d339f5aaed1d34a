// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"iturinews/internal/content"
	"iturinews/internal/middleware"
	"iturinews/internal/models"
)

// Admin groups the superadmin surface: account listing and role changes.
type Admin struct {
	content *content.Service
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(contentService *content.Service) *Admin {
	return &Admin{content: contentService}
}

// Users returns every account.
func (h *Admin) Users(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())
	users, err := h.content.ListUsers(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// SetRole changes an account's role.
func (h *Admin) SetRole(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role models.Role `json:"role"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	principal := middleware.PrincipalFromCtx(r.Context())
	user, err := h.content.SetUserRole(r.Context(), principal, chi.URLParam(r, "id"), body.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
