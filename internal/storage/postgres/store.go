// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"iturinews/internal/apperr"
	"iturinews/internal/models"
	"iturinews/internal/storage"
)

// Store implements storage.Store over a *sql.DB. Writes on the same post
// serialize through row locks so a post's fields are read-modify-written
// atomically relative to concurrent writers.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store with the given database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ storage.Store = (*Store)(nil)

// === Domains ===

func (s *Store) ListDomains(ctx context.Context) ([]models.Domain, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, slug, color FROM domains`)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	defer rows.Close()

	var domains []models.Domain
	for rows.Next() {
		var d models.Domain
		if err := rows.Scan(&d.ID, &d.Name, &d.Slug, &d.Color); err != nil {
			return nil, fmt.Errorf("scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	return domains, rows.Err()
}

func (s *Store) FindDomainByID(ctx context.Context, id string) (*models.Domain, error) {
	return s.findDomain(ctx, `SELECT id, name, slug, color FROM domains WHERE id = $1`, id)
}

func (s *Store) FindDomainBySlug(ctx context.Context, slug string) (*models.Domain, error) {
	return s.findDomain(ctx, `SELECT id, name, slug, color FROM domains WHERE slug = $1`, slug)
}

func (s *Store) findDomain(ctx context.Context, query, key string) (*models.Domain, error) {
	d := &models.Domain{}
	err := s.db.QueryRowContext(ctx, query, key).Scan(&d.ID, &d.Name, &d.Slug, &d.Color)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("domain", key)
	}
	if err != nil {
		return nil, fmt.Errorf("find domain: %w", err)
	}
	return d, nil
}

// === Authors ===

func (s *Store) ListAuthors(ctx context.Context) ([]models.Author, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, full_name, avatar_url, bio, email FROM authors`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var authors []models.Author
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.FullName, &a.AvatarURL, &a.Bio, &a.Email); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (s *Store) FindAuthorByID(ctx context.Context, id string) (*models.Author, error) {
	return s.findAuthor(ctx, `SELECT id, full_name, avatar_url, bio, email FROM authors WHERE id = $1`, id)
}

func (s *Store) FindAuthorByEmail(ctx context.Context, email string) (*models.Author, error) {
	return s.findAuthor(ctx, `SELECT id, full_name, avatar_url, bio, email FROM authors WHERE lower(email) = lower($1)`, email)
}

func (s *Store) findAuthor(ctx context.Context, query, key string) (*models.Author, error) {
	a := &models.Author{}
	err := s.db.QueryRowContext(ctx, query, key).Scan(&a.ID, &a.FullName, &a.AvatarURL, &a.Bio, &a.Email)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("author", key)
	}
	if err != nil {
		return nil, fmt.Errorf("find author: %w", err)
	}
	return a, nil
}

// AddAuthor registers a publishing identity. Used by seeding.
func (s *Store) AddAuthor(ctx context.Context, a models.Author) (*models.Author, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO authors (id, full_name, avatar_url, bio, email)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.FullName, a.AvatarURL, a.Bio, a.Email)
	if err != nil {
		return nil, fmt.Errorf("add author: %w", err)
	}
	return &a, nil
}

// AddDomain registers a category. Used by seeding.
func (s *Store) AddDomain(ctx context.Context, d models.Domain) (*models.Domain, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO domains (id, name, slug, color) VALUES ($1, $2, $3, $4)
	`, d.ID, d.Name, d.Slug, d.Color)
	if err != nil {
		return nil, fmt.Errorf("add domain: %w", err)
	}
	return &d, nil
}

// AddUser registers an account. Used by seeding.
func (s *Store) AddUser(ctx context.Context, u models.User) (*models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, role, avatar_url, external_id, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.Email, u.Name, u.Role, u.AvatarURL, u.ExternalID, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}
	return &u, nil
}

// === Posts ===

const postColumns = `
	p.id, p.slug, p.title, p.cover_image_url, p.html_content, p.excerpt,
	p.created_at, p.updated_at, p.status, p.view_count, p.comment_count,
	d.id, d.name, d.slug, d.color,
	a.id, a.full_name, a.avatar_url, a.bio, a.email`

const postJoins = `
	FROM posts p
	JOIN domains d ON d.id = p.domain_id
	JOIN authors a ON a.id = p.author_id`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.CoverImageURL, &p.HTMLContent, &p.Excerpt,
		&p.CreatedAt, &p.UpdatedAt, &p.Status, &p.ViewCount, &p.CommentCount,
		&p.Domain.ID, &p.Domain.Name, &p.Domain.Slug, &p.Domain.Color,
		&p.Author.ID, &p.Author.FullName, &p.Author.AvatarURL, &p.Author.Bio, &p.Author.Email,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT`+postColumns+postJoins)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	index := make(map[string]int)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Comments = []models.Comment{}
		index[p.ID] = len(posts)
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byPost, err := s.loadAllComments(ctx)
	if err != nil {
		return nil, err
	}
	for postID, comments := range byPost {
		if i, ok := index[postID]; ok {
			posts[i].Comments = comments
		}
	}
	return posts, nil
}

func (s *Store) FindPostByID(ctx context.Context, id string) (*models.Post, error) {
	return s.findPost(ctx, `WHERE p.id = $1`, id)
}

func (s *Store) FindPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.findPost(ctx, `WHERE p.slug = $1`, slug)
}

func (s *Store) findPost(ctx context.Context, where, key string) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, `SELECT`+postColumns+postJoins+` `+where, key))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("post", key)
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}

	comments, err := s.loadComments(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Comments = comments
	return p, nil
}

func (s *Store) InsertPost(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.Slug == "" {
		return nil, apperr.Validation("post slug is required")
	}

	var taken bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, post.Slug,
	).Scan(&taken); err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return nil, apperr.Validation("post slug %q already exists", post.Slug)
	}

	id := post.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := post.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	status := post.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (id, slug, title, cover_image_url, domain_id, html_content,
		                   excerpt, author_id, created_at, status, view_count, comment_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0)
	`, id, post.Slug, post.Title, post.CoverImageURL, post.Domain.ID,
		post.HTMLContent, post.Excerpt, post.Author.ID, createdAt, status, post.ViewCount)
	if err != nil {
		// Unresolvable references surface as foreign key violations.
		if isForeignKeyViolation(err) {
			return nil, apperr.Validation("post references unknown domain or author")
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}

	return s.FindPostByID(ctx, id)
}

func (s *Store) UpdatePost(ctx context.Context, id string, update storage.PostUpdate) (*models.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update post begin: %w", err)
	}
	defer tx.Rollback()

	// Lock the row so the merge is atomic relative to other writers.
	p := &models.Post{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, title, cover_image_url, domain_id, html_content, excerpt, status
		FROM posts WHERE id = $1 FOR UPDATE
	`, id).Scan(&p.ID, &p.Title, &p.CoverImageURL, &p.Domain.ID, &p.HTMLContent, &p.Excerpt, &p.Status)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("post", id)
	}
	if err != nil {
		return nil, fmt.Errorf("update post lock: %w", err)
	}

	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.CoverImageURL != nil {
		p.CoverImageURL = update.CoverImageURL
	}
	if update.DomainID != nil {
		p.Domain.ID = *update.DomainID
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

	_, err = tx.ExecContext(ctx, `
		UPDATE posts SET
			title = $1, cover_image_url = $2, domain_id = $3, html_content = $4,
			excerpt = $5, status = $6, updated_at = NOW()
		WHERE id = $7
	`, p.Title, p.CoverImageURL, p.Domain.ID, p.HTMLContent, p.Excerpt, p.Status, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperr.Validation("post references unknown domain %q", p.Domain.ID)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update post commit: %w", err)
	}
	return s.FindPostByID(ctx, id)
}

func (s *Store) IncrementViewCount(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("post", id)
	}
	return nil
}

// === Comments ===

func (s *Store) AppendComment(ctx context.Context, postID string, comment *models.Comment) (*models.Comment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("append comment begin: %w", err)
	}
	defer tx.Rollback()

	// Lock the post row so the counter update below stays consistent.
	var locked string
	err = tx.QueryRowContext(ctx, `SELECT id FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&locked)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("post", postID)
	}
	if err != nil {
		return nil, fmt.Errorf("append comment check: %w", err)
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

	_, err = tx.ExecContext(ctx, `
		INSERT INTO comments (id, post_id, author_name, author_avatar_url, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, stored.ID, postID, stored.Author.Name, stored.Author.AvatarURL, stored.Content, stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("append comment: %w", err)
	}

	// Keep the denormalized counter consistent with the top-level list.
	_, err = tx.ExecContext(ctx, `
		UPDATE posts SET comment_count = (
			SELECT COUNT(*) FROM comments WHERE post_id = $1 AND parent_id IS NULL
		) WHERE id = $1
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("append comment count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("append comment commit: %w", err)
	}
	return &stored, nil
}

// loadComments returns a post's comment tree, top-level comments
// newest-last, replies nested under their parents.
func (s *Store) loadComments(ctx context.Context, postID string) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, post_id, parent_id, author_name, author_avatar_url, content, created_at
		FROM comments WHERE post_id = $1 ORDER BY created_at ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	defer rows.Close()

	return assembleComments(rows)
}

// loadAllComments loads every comment grouped by post id. Used by ListPosts
// to avoid one query per post.
func (s *Store) loadAllComments(ctx context.Context) (map[string][]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, post_id, parent_id, author_name, author_avatar_url, content, created_at
		FROM comments ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	defer rows.Close()

	byPost := make(map[string]map[string]*models.Comment)
	order := make(map[string][]string) // post id → top-level comment ids in creation order
	for rows.Next() {
		c, parentID, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		if byPost[c.PostID] == nil {
			byPost[c.PostID] = make(map[string]*models.Comment)
		}
		byPost[c.PostID][c.ID] = c
		if parentID == nil {
			order[c.PostID] = append(order[c.PostID], c.ID)
		} else if parent, ok := byPost[c.PostID][*parentID]; ok {
			parent.Replies = append(parent.Replies, *c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make(map[string][]models.Comment, len(order))
	for postID, ids := range order {
		comments := make([]models.Comment, 0, len(ids))
		for _, id := range ids {
			comments = append(comments, *byPost[postID][id])
		}
		out[postID] = comments
	}
	return out, nil
}

func assembleComments(rows *sql.Rows) ([]models.Comment, error) {
	all := make(map[string]*models.Comment)
	var topLevel []string
	for rows.Next() {
		c, parentID, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		all[c.ID] = c
		if parentID == nil {
			topLevel = append(topLevel, c.ID)
		} else if parent, ok := all[*parentID]; ok {
			// Rows arrive oldest-first, so parents precede their replies.
			parent.Replies = append(parent.Replies, *c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0, len(topLevel))
	for _, id := range topLevel {
		comments = append(comments, *all[id])
	}
	return comments, nil
}

func scanComment(rows *sql.Rows) (*models.Comment, *string, error) {
	c := &models.Comment{}
	var parentID *string
	err := rows.Scan(&c.ID, &c.PostID, &parentID, &c.Author.Name, &c.Author.AvatarURL, &c.Content, &c.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("scan comment: %w", err)
	}
	return c, parentID, nil
}

// === Users ===

const userColumns = `id, email, name, role, avatar_url, external_id, password_hash, created_at`

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.AvatarURL, &u.ExternalID, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, `WHERE id = $1`, id)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, `WHERE lower(email) = lower($1)`, email)
}

func (s *Store) FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return s.findUser(ctx, `WHERE external_id = $1`, externalID)
}

func (s *Store) findUser(ctx context.Context, where, key string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users `+where, key).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.AvatarURL, &u.ExternalID, &u.PasswordHash, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("user", key)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *Store) SetUserRole(ctx context.Context, userID string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, apperr.Validation("unknown role %q", role)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, userID)
	if err != nil {
		return nil, fmt.Errorf("set user role: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("set user role: %w", err)
	}
	if n == 0 {
		return nil, apperr.NotFound("user", userID)
	}
	return s.FindUserByID(ctx, userID)
}

// isForeignKeyViolation matches the PostgreSQL foreign_key_violation
// SQLSTATE (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
