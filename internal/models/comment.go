// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// CommentAuthor is a lightweight snapshot of who wrote a comment.
// Deliberately not a full Author reference: a commenter need not be a
// registered byline.
type CommentAuthor struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Comment is a reader comment on a post. Comments are immutable once
// created. Replies form a finite tree of arbitrary depth.
type Comment struct {
	ID        string        `json:"id"`
	PostID    string        `json:"postId"`
	Author    CommentAuthor `json:"author"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	Replies   []Comment     `json:"replies,omitempty"`
}
