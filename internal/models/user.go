// Package models defines the data structures exchanged across the content
// core: domains, authors, users, posts, comments, and the query shapes.
package models

import "time"

// Role represents a user's permission level in the system.
type Role string

const (
	RoleReader     Role = "reader"
	RoleJournalist Role = "journalist"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleJournalist, RoleSuperadmin:
		return true
	}
	return false
}

// CanAuthor reports whether the role is allowed to hold an Author byline.
func (r Role) CanAuthor() bool {
	return r == RoleJournalist || r == RoleSuperadmin
}

// User represents an authenticated account. A User is distinct from an
// Author: the Author is the public byline, the User is the login. Users
// with an authoring role are linked to exactly one Author by email.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	AvatarURL    *string   `json:"avatarUrl,omitempty"`
	ExternalID   *string   `json:"externalId,omitempty"`
	PasswordHash *string   `json:"-"` // Never serialize the hash
	CreatedAt    time.Time `json:"createdAt"`
}

// IsSuperadmin returns true if the user holds the superadmin role.
func (u *User) IsSuperadmin() bool {
	return u.Role == RoleSuperadmin
}
