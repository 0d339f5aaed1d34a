// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package query filters, sorts, and paginates the public view of the
// post set. It is pure: it never errors and never mutates its input.
package query

import (
	"sort"
	"strings"

	"iturinews/internal/models"
)

// DefaultPageSize is used when the caller does not set a page size.
const DefaultPageSize = 12

// Posts produces one page of the published-only, filtered, newest-first
// view of all.
//
// Filters apply in order: published status, exact domain slug, exact
// author id, then case-insensitive substring match of Q against title or
// excerpt (a post without an excerpt can only match on its title). The
// result sorts by createdAt descending with ties broken by id ascending.
//
// Page values below 1 are treated as 1. A page beyond the last one
// returns empty items with the true total; it never clamps to the last
// page, so the union of all pages always equals the filtered set exactly.
func Posts(all []models.Post, f models.PostFilters) models.PostsResponse {
	filtered := make([]models.Post, 0, len(all))
	for _, p := range all {
		if !p.IsPublished() {
			continue
		}
		if f.Domain != "" && p.Domain.Slug != f.Domain {
			continue
		}
		if f.Author != "" && p.Author.ID != f.Author {
			continue
		}
		if f.Q != "" && !matchesQuery(&p, f.Q) {
			continue
		}
		filtered = append(filtered, p)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].ID < filtered[j].ID
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	items := make([]models.Post, end-start)
	copy(items, filtered[start:end])

	return models.PostsResponse{
		Items:    items,
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
	}
}

// matchesQuery checks the case-insensitive substring match against title
// and excerpt independently.
func matchesQuery(p *models.Post, q string) bool {
	needle := strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if p.Excerpt != nil && strings.Contains(strings.ToLower(*p.Excerpt), needle) {
		return true
	}
	return false
}
