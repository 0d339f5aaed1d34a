// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"iturinews/internal/content"
	"iturinews/internal/middleware"
)

// Posts groups the authoring surface: a journalist's own posts and the
// create / update / publish / comment writes. Authorization decisions
// live in the content service; these handlers only pass the principal
// through.
type Posts struct {
	content *content.Service
}

// NewPosts creates a new Posts handler group.
func NewPosts(contentService *content.Service) *Posts {
	return &Posts{content: contentService}
}

// Mine returns the principal's own posts, drafts included.
func (h *Posts) Mine(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())
	posts, err := h.content.ListMine(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Create makes a new draft post.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var input content.PostInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	principal := middleware.PrincipalFromCtx(r.Context())
	post, err := h.content.Create(r.Context(), principal, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Update merges a partial edit into a post.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	var patch content.PostPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	principal := middleware.PrincipalFromCtx(r.Context())
	post, err := h.content.Update(r.Context(), principal, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Publish transitions a draft to published.
func (h *Posts) Publish(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())
	post, err := h.content.Publish(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Comment appends a top-level comment to a post.
func (h *Posts) Comment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	principal := middleware.PrincipalFromCtx(r.Context())
	comment, err := h.content.AddComment(r.Context(), principal, chi.URLParam(r, "id"), body.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
