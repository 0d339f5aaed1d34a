// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package inmemory implements the storage contract over plain maps.
// It is the backend for tests and development mode. All invariant checks
// the repository owns (slug uniqueness, resolvable references, one author
// per email) are enforced here, same as in the PostgreSQL backend.
package inmemory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"iturinews/internal/apperr"
	"iturinews/internal/models"
	"iturinews/internal/storage"
)

// Store implements storage.Store in memory. A single mutex serializes
// writes; reads take the read lock and return copies so callers can never
// mutate repository state through a returned value.
type Store struct {
	mu      sync.RWMutex
	domains map[string]*models.Domain
	authors map[string]*models.Author
	posts   map[string]*models.Post
	users   map[string]*models.User

	postSlugs   map[string]string // slug → post id
	domainSlugs map[string]string // slug → domain id
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		domains:     make(map[string]*models.Domain),
		authors:     make(map[string]*models.Author),
		posts:       make(map[string]*models.Post),
		users:       make(map[string]*models.User),
		postSlugs:   make(map[string]string),
		domainSlugs: make(map[string]string),
	}
}

var _ storage.Store = (*Store)(nil)

// === Domains ===

// AddDomain registers a domain. Not part of the storage contract —
// domains are immutable after creation and provisioned by seeding.
func (s *Store) AddDomain(d models.Domain) (*models.Domain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !d.Color.Valid() {
		return nil, apperr.Validation("unknown domain color %q", d.Color)
	}
	if _, taken := s.domainSlugs[d.Slug]; taken {
		return nil, apperr.Validation("domain slug %q already exists", d.Slug)
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	s.domains[d.ID] = &d
	s.domainSlugs[d.Slug] = d.ID
	return copyDomain(&d), nil
}

func (s *Store) ListDomains(ctx context.Context) ([]models.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Domain, 0, len(s.domains))
	for _, d := range s.domains {
		out = append(out, *copyDomain(d))
	}
	return out, nil
}

func (s *Store) FindDomainByID(ctx context.Context, id string) (*models.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.domains[id]
	if !ok {
		return nil, apperr.NotFound("domain", id)
	}
	return copyDomain(d), nil
}

func (s *Store) FindDomainBySlug(ctx context.Context, slug string) (*models.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.domainSlugs[slug]
	if !ok {
		return nil, apperr.NotFound("domain", slug)
	}
	return copyDomain(s.domains[id]), nil
}

// === Authors ===

// AddAuthor registers a publishing identity. Enforces at most one author
// per email.
func (s *Store) AddAuthor(a models.Author) (*models.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.Email != nil {
		for _, existing := range s.authors {
			if existing.Email != nil && strings.EqualFold(*existing.Email, *a.Email) {
				return nil, apperr.Validation("author with email %q already exists", *a.Email)
			}
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.authors[a.ID] = &a
	return copyAuthor(&a), nil
}

func (s *Store) ListAuthors(ctx context.Context) ([]models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Author, 0, len(s.authors))
	for _, a := range s.authors {
		out = append(out, *copyAuthor(a))
	}
	return out, nil
}

func (s *Store) FindAuthorByID(ctx context.Context, id string) (*models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.authors[id]
	if !ok {
		return nil, apperr.NotFound("author", id)
	}
	return copyAuthor(a), nil
}

func (s *Store) FindAuthorByEmail(ctx context.Context, email string) (*models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.authors {
		if a.Email != nil && strings.EqualFold(*a.Email, email) {
			return copyAuthor(a), nil
		}
	}
	return nil, apperr.NotFound("author", email)
}

// === Posts ===

func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *copyPost(p))
	}
	return out, nil
}

func (s *Store) FindPostByID(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, apperr.NotFound("post", id)
	}
	return copyPost(p), nil
}

func (s *Store) FindPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.postSlugs[slug]
	if !ok {
		return nil, apperr.NotFound("post", slug)
	}
	return copyPost(s.posts[id]), nil
}

func (s *Store) InsertPost(ctx context.Context, post *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.Slug == "" {
		return nil, apperr.Validation("post slug is required")
	}
	if _, taken := s.postSlugs[post.Slug]; taken {
		return nil, apperr.Validation("post slug %q already exists", post.Slug)
	}
	domain, ok := s.domains[post.Domain.ID]
	if !ok {
		return nil, apperr.Validation("post references unknown domain %q", post.Domain.ID)
	}
	author, ok := s.authors[post.Author.ID]
	if !ok {
		return nil, apperr.Validation("post references unknown author %q", post.Author.ID)
	}

	stored := *copyPost(post)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	if stored.Comments == nil {
		stored.Comments = []models.Comment{}
	}
	stored.Domain = *copyDomain(domain)
	stored.Author = *copyAuthor(author)
	stored.CommentCount = len(stored.Comments)

	s.posts[stored.ID] = &stored
	s.postSlugs[stored.Slug] = stored.ID
	return copyPost(&stored), nil
}

func (s *Store) UpdatePost(ctx context.Context, id string, update storage.PostUpdate) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, apperr.NotFound("post", id)
	}
	if update.DomainID != nil {
		domain, ok := s.domains[*update.DomainID]
		if !ok {
			return nil, apperr.Validation("post references unknown domain %q", *update.DomainID)
		}
		p.Domain = *copyDomain(domain)
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.CoverImageURL != nil {
		p.CoverImageURL = update.CoverImageURL
	}
	if update.HTMLContent != nil {
		p.HTMLContent = *update.HTMLContent
	}
	if update.Excerpt != nil {
		p.Excerpt = update.Excerpt
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	now := time.Now().UTC()
	p.UpdatedAt = &now
	return copyPost(p), nil
}

func (s *Store) IncrementViewCount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return apperr.NotFound("post", id)
	}
	p.ViewCount++
	return nil
}

// === Comments ===

func (s *Store) AppendComment(ctx context.Context, postID string, comment *models.Comment) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, apperr.NotFound("post", postID)
	}

	stored := *comment
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	stored.PostID = postID
	stored.Replies = nil

	p.Comments = append(p.Comments, stored)
	p.CommentCount = len(p.Comments)
	return &stored, nil
}

// === Users ===

// AddUser registers an account. Emails are unique.
func (s *Store) AddUser(u models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, apperr.Validation("user with email %q already exists", u.Email)
		}
	}
	if !u.Role.Valid() {
		return nil, apperr.Validation("unknown role %q", u.Role)
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = &u
	return copyUser(&u), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *copyUser(u))
	}
	return out, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("user", id)
	}
	return copyUser(u), nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, apperr.NotFound("user", email)
}

func (s *Store) FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ExternalID != nil && *u.ExternalID == externalID {
			return copyUser(u), nil
		}
	}
	return nil, apperr.NotFound("user", externalID)
}

func (s *Store) SetUserRole(ctx context.Context, userID string, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !role.Valid() {
		return nil, apperr.Validation("unknown role %q", role)
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, apperr.NotFound("user", userID)
	}
	u.Role = role
	return copyUser(u), nil
}

// === copy helpers ===
//
// Comments are immutable once created, so comment slices are cloned one
// level deep and reply trees are shared.

func copyDomain(d *models.Domain) *models.Domain {
	c := *d
	return &c
}

func copyAuthor(a *models.Author) *models.Author {
	c := *a
	return &c
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyPost(p *models.Post) *models.Post {
	c := *p
	if p.Comments != nil {
		c.Comments = make([]models.Comment, len(p.Comments))
		copy(c.Comments, p.Comments)
	}
	return &c
}
