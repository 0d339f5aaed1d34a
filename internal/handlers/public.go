// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"iturinews/internal/content"
	"iturinews/internal/middleware"
	"iturinews/internal/models"
)

// Public groups handlers for the unauthenticated browsing surface:
// domain and author listings, the published post listing, and single
// post reads (which still consult the principal for drafts and the
// full-content gate).
type Public struct {
	content *content.Service
}

// NewPublic creates a new Public handler group.
func NewPublic(contentService *content.Service) *Public {
	return &Public{content: contentService}
}

// Domains returns all categories.
func (h *Public) Domains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.content.ListDomains(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domains)
}

// Authors returns all bylines.
func (h *Public) Authors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.content.ListAuthors(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authors)
}

// Posts returns one page of the published post listing. Filters come
// from query parameters: domain (slug), author (id), q (search), page,
// pageSize.
func (h *Public) Posts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := models.PostFilters{
		Domain:   q.Get("domain"),
		Author:   q.Get("author"),
		Q:        q.Get("q"),
		Page:     atoiOr(q.Get("page"), 1),
		PageSize: atoiOr(q.Get("pageSize"), 0),
	}

	resp, err := h.content.ListPublished(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Post returns a single post by slug, visibility-filtered for the
// current principal.
func (h *Public) Post(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())
	post, err := h.content.GetBySlug(r.Context(), principal, chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
