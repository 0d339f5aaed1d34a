// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content implements the publication workflow and the operation
// surface the presentation layer consumes. Every gated operation takes
// the acting principal explicitly and consults the authorization service
// exactly once before touching the repository.
package content

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"iturinews/internal/apperr"
	"iturinews/internal/authz"
	"iturinews/internal/models"
	"iturinews/internal/query"
	"iturinews/internal/slug"
	"iturinews/internal/storage"
)

// Service coordinates the repository, the query engine, and the
// authorization matrix.
type Service struct {
	store storage.Store
	authz *authz.Service
}

// New creates a content service over the given repository.
func New(store storage.Store, az *authz.Service) *Service {
	return &Service{store: store, authz: az}
}

// PostInput carries the author-supplied fields for a new post.
type PostInput struct {
	Title         string  `json:"title"`
	CoverImageURL *string `json:"coverImageUrl,omitempty"`
	DomainID      string  `json:"domainId"`
	HTMLContent   string  `json:"htmlContent"`
	Excerpt       *string `json:"excerpt,omitempty"`
}

// PostPatch carries a partial update. Nil fields stay untouched. Status,
// slug, and byline are not patchable: publication goes through Publish,
// identity never changes.
type PostPatch struct {
	Title         *string `json:"title,omitempty"`
	CoverImageURL *string `json:"coverImageUrl,omitempty"`
	DomainID      *string `json:"domainId,omitempty"`
	HTMLContent   *string `json:"htmlContent,omitempty"`
	Excerpt       *string `json:"excerpt,omitempty"`
}

// ListDomains returns all categories.
func (s *Service) ListDomains(ctx context.Context) ([]models.Domain, error) {
	domains, err := s.store.ListDomains(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(domains, func(i, j int) bool { return domains[i].Name < domains[j].Name })
	return domains, nil
}

// ListAuthors returns all bylines.
func (s *Service) ListAuthors(ctx context.Context) ([]models.Author, error) {
	authors, err := s.store.ListAuthors(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].FullName < authors[j].FullName })
	return authors, nil
}

// ListPublished returns one page of the public post listing. Draft posts
// never appear here regardless of the caller. An empty result is a valid
// success, never an error.
func (s *Service) ListPublished(ctx context.Context, filters models.PostFilters) (models.PostsResponse, error) {
	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return models.PostsResponse{}, fmt.Errorf("list posts: %w", err)
	}
	return query.Posts(posts, filters), nil
}

// GetBySlug returns a post by slug, visibility-filtered for the
// principal. Draft posts are visible only to their owning journalist or
// a superadmin; to everyone else they do not exist. Published reads
// count a view. Anonymous callers receive the post with its full body
// withheld — only authenticated principals read complete articles.
func (s *Service) GetBySlug(ctx context.Context, principal *models.User, postSlug string) (*models.Post, error) {
	post, err := s.store.FindPostBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	if !post.IsPublished() {
		if err := s.authz.CanViewDraft(principal, post); err != nil {
			// Do not reveal that the draft exists.
			return nil, apperr.NotFound("post", postSlug)
		}
		return post, nil
	}

	if err := s.store.IncrementViewCount(ctx, post.ID); err != nil {
		return nil, fmt.Errorf("count view: %w", err)
	}
	post.ViewCount++

	if err := s.authz.CanReadFullContent(principal); err != nil {
		post.HTMLContent = ""
	}
	return post, nil
}

// ListMine returns all posts bylined by the principal's linked author,
// drafts included, newest first.
func (s *Service) ListMine(ctx context.Context, principal *models.User) ([]models.Post, error) {
	if err := s.authz.CanCreatePost(principal); err != nil {
		return nil, err
	}

	author, err := s.resolveByline(ctx, principal)
	if err != nil {
		return nil, err
	}

	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	mine := make([]models.Post, 0)
	for _, p := range posts {
		if p.Author.ID == author.ID {
			mine = append(mine, p)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		if mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].ID < mine[j].ID
		}
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	return mine, nil
}

// Create makes a new draft post bylined by the principal's linked
// author. The slug derives from the title; a colliding slug is a
// validation failure, never auto-disambiguated.
func (s *Service) Create(ctx context.Context, principal *models.User, input PostInput) (*models.Post, error) {
	if err := s.authz.CanCreatePost(principal); err != nil {
		return nil, err
	}

	author, err := s.resolveByline(ctx, principal)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = "Untitled"
	}
	if input.DomainID == "" {
		return nil, apperr.Validation("domain is required")
	}

	post := &models.Post{
		Slug:          slug.Generate(title),
		Title:         title,
		CoverImageURL: input.CoverImageURL,
		Domain:        models.Domain{ID: input.DomainID},
		HTMLContent:   input.HTMLContent,
		Excerpt:       input.Excerpt,
		Author:        *author,
		Status:        models.PostStatusDraft,
		Comments:      []models.Comment{},
	}
	return s.store.InsertPost(ctx, post)
}

// Update merges a partial edit into an existing post. Editing a
// published post corrects its content without reverting its status.
func (s *Service) Update(ctx context.Context, principal *models.User, id string, patch PostPatch) (*models.Post, error) {
	post, err := s.store.FindPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanMutatePost(principal, post); err != nil {
		return nil, err
	}

	return s.store.UpdatePost(ctx, id, storage.PostUpdate{
		Title:         patch.Title,
		CoverImageURL: patch.CoverImageURL,
		DomainID:      patch.DomainID,
		HTMLContent:   patch.HTMLContent,
		Excerpt:       patch.Excerpt,
	})
}

// Publish transitions a draft to published. Publishing an
// already-published post is a no-op success: the terminal state is the
// same either way and the operation stays safely retryable.
func (s *Service) Publish(ctx context.Context, principal *models.User, id string) (*models.Post, error) {
	post, err := s.store.FindPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanMutatePost(principal, post); err != nil {
		return nil, err
	}

	if post.IsPublished() {
		return post, nil
	}

	status := models.PostStatusPublished
	return s.store.UpdatePost(ctx, id, storage.PostUpdate{Status: &status})
}

// AddComment appends a top-level comment authored by the principal.
// Comments are immutable once created.
func (s *Service) AddComment(ctx context.Context, principal *models.User, postID, text string) (*models.Comment, error) {
	if err := s.authz.CanComment(principal); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("comment content cannot be empty")
	}

	return s.store.AppendComment(ctx, postID, &models.Comment{
		Author: models.CommentAuthor{
			Name:      principal.Name,
			AvatarURL: principal.AvatarURL,
		},
		Content: text,
	})
}

// ListUsers returns every account. Superadmin only.
func (s *Service) ListUsers(ctx context.Context, principal *models.User) ([]models.User, error) {
	if err := s.authz.CanListUsers(principal); err != nil {
		return nil, err
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// SetUserRole changes an account's role. Superadmin only.
func (s *Service) SetUserRole(ctx context.Context, principal *models.User, userID string, role models.Role) (*models.User, error) {
	if err := s.authz.CanChangeRole(principal); err != nil {
		return nil, err
	}
	return s.store.SetUserRole(ctx, userID, role)
}

// resolveByline maps an authoring principal to its Author record via the
// shared email. An authoring account without a byline cannot publish.
func (s *Service) resolveByline(ctx context.Context, principal *models.User) (*models.Author, error) {
	author, err := s.store.FindAuthorByEmail(ctx, principal.Email)
	if apperr.IsNotFound(err) {
		return nil, apperr.Validation("no author byline for account %s", principal.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve byline: %w", err)
	}
	return author, nil
}
