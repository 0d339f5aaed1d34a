// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage defines the content repository contract. Two backends
// implement it: an in-memory map store used by tests and development, and
// the PostgreSQL store used in production. The repository holds and
// validates data; visibility rules and ordering belong to the callers.
package storage

import (
	"context"

	"iturinews/internal/models"
)

// PostUpdate carries the fields an update may change. Nil pointers leave
// the field untouched. A post's id, slug, and author are identity and
// cannot be changed through an update.
type PostUpdate struct {
	Title         *string
	CoverImageURL *string
	DomainID      *string
	HTMLContent   *string
	Excerpt       *string
	Status        *models.PostStatus
}

// Store is the authoritative repository of posts, domains, authors,
// users, and comments.
//
// Lookup methods return apperr.NotFoundError when the key is absent.
// Insert and update methods return apperr.ValidationError on slug
// collisions or unresolvable references. No listing method guarantees
// an ordering; ordering is the query engine's concern.
type Store interface {
	// Domains
	ListDomains(ctx context.Context) ([]models.Domain, error)
	FindDomainByID(ctx context.Context, id string) (*models.Domain, error)
	FindDomainBySlug(ctx context.Context, slug string) (*models.Domain, error)

	// Authors
	ListAuthors(ctx context.Context) ([]models.Author, error)
	FindAuthorByID(ctx context.Context, id string) (*models.Author, error)
	FindAuthorByEmail(ctx context.Context, email string) (*models.Author, error)

	// Posts
	ListPosts(ctx context.Context) ([]models.Post, error)
	FindPostByID(ctx context.Context, id string) (*models.Post, error)
	// FindPostBySlug returns the post regardless of status; callers must
	// apply visibility rules.
	FindPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	InsertPost(ctx context.Context, post *models.Post) (*models.Post, error)
	UpdatePost(ctx context.Context, id string, update PostUpdate) (*models.Post, error)
	IncrementViewCount(ctx context.Context, id string) error

	// Comments. AppendComment adds to the top-level list and keeps the
	// post's CommentCount consistent.
	AppendComment(ctx context.Context, postID string, comment *models.Comment) (*models.Comment, error)

	// Users
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error)
	SetUserRole(ctx context.Context, userID string, role models.Role) (*models.User, error)
}
