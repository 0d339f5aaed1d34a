// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is a news article. The slug is derived from the title at creation
// and is unique among all posts regardless of status. CommentCount is a
// cached denormalization of the top-level comment list length and is kept
// consistent on every comment addition.
type Post struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	CoverImageURL *string    `json:"coverImageUrl,omitempty"`
	Domain        Domain     `json:"domain"`
	HTMLContent   string     `json:"htmlContent"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	Author        Author     `json:"author"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	Status        PostStatus `json:"status"`
	ViewCount     int        `json:"viewCount"`
	CommentCount  int        `json:"commentCount"`
	Comments      []Comment  `json:"comments"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// PostFilters is the transient query shape for public post listings.
// Domain filters by domain slug, Author by author id, Q by case-insensitive
// substring over title or excerpt.
type PostFilters struct {
	Domain   string `json:"domain,omitempty"`
	Author   string `json:"author,omitempty"`
	Q        string `json:"q,omitempty"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// PostsResponse is a single page of a filtered listing. Total counts the
// filtered set before pagination.
type PostsResponse struct {
	Items    []Post `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}
