// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package authz is the single place where role and ownership rules live.
// Every gated operation asks this package exactly once; no call site
// branches on roles directly.
//
// A nil principal means anonymous. Denials distinguish two kinds:
// no principal where one is required yields an UnauthorizedError, a
// present principal lacking role or ownership yields a ForbiddenError.
package authz

import (
	"strings"

	"iturinews/internal/apperr"
	"iturinews/internal/models"
)

// Service evaluates the permission matrix.
type Service struct{}

// New creates an authorization service.
func New() *Service {
	return &Service{}
}

// CanReadFullContent gates access to a published post's full body.
// Any authenticated principal qualifies; anonymous readers only see the
// excerpt.
func (s *Service) CanReadFullContent(p *models.User) error {
	if p == nil {
		return apperr.Unauthorized("read full content")
	}
	return nil
}

// CanViewDraft gates read access to a draft post. A journalist may view
// their own drafts, a superadmin any draft.
func (s *Service) CanViewDraft(p *models.User, post *models.Post) error {
	if p == nil {
		return apperr.Unauthorized("view draft")
	}
	if p.IsSuperadmin() {
		return nil
	}
	if p.Role == models.RoleJournalist && owns(p, post) {
		return nil
	}
	return apperr.Forbidden("view draft")
}

// CanCreatePost gates post creation: journalists and superadmins only.
func (s *Service) CanCreatePost(p *models.User) error {
	if p == nil {
		return apperr.Unauthorized("create post")
	}
	if !p.Role.CanAuthor() {
		return apperr.Forbidden("create post")
	}
	return nil
}

// CanMutatePost gates updates and publication of an existing post.
// A journalist may mutate only posts whose byline resolves to their own
// account; a superadmin may mutate any post.
func (s *Service) CanMutatePost(p *models.User, post *models.Post) error {
	if p == nil {
		return apperr.Unauthorized("mutate post")
	}
	if p.IsSuperadmin() {
		return nil
	}
	if p.Role == models.RoleJournalist && owns(p, post) {
		return nil
	}
	return apperr.Forbidden("mutate post")
}

// CanComment gates comment creation. Any authenticated principal may
// comment; anonymous callers must sign in first.
func (s *Service) CanComment(p *models.User) error {
	if p == nil {
		return apperr.Unauthorized("post comment")
	}
	return nil
}

// CanListUsers gates the account listing: superadmin only.
func (s *Service) CanListUsers(p *models.User) error {
	return s.superadminOnly(p, "list users")
}

// CanChangeRole gates role mutation: superadmin only.
func (s *Service) CanChangeRole(p *models.User) error {
	return s.superadminOnly(p, "change user role")
}

func (s *Service) superadminOnly(p *models.User, action string) error {
	if p == nil {
		return apperr.Unauthorized(action)
	}
	if !p.IsSuperadmin() {
		return apperr.Forbidden(action)
	}
	return nil
}

// owns reports whether the post's byline belongs to the principal.
// The linkage between a User and an Author is their shared email.
func owns(p *models.User, post *models.Post) bool {
	if post.Author.Email == nil {
		return false
	}
	return strings.EqualFold(*post.Author.Email, p.Email)
}
