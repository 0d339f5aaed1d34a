// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Color is one of the fixed palette keys a Domain can carry. The palette
// is closed; the presentation layer maps keys to its own theme.
type Color string

const (
	ColorEmerald Color = "emerald"
	ColorRose    Color = "rose"
	ColorIndigo  Color = "indigo"
	ColorSlate   Color = "slate"
	ColorAmber   Color = "amber"
	ColorPurple  Color = "purple"
)

// Valid reports whether c is part of the fixed palette.
func (c Color) Valid() bool {
	switch c {
	case ColorEmerald, ColorRose, ColorIndigo, ColorSlate, ColorAmber, ColorPurple:
		return true
	}
	return false
}

// Domain is a topical category for posts. Domains are immutable after
// creation and referenced by posts by identity, never copied.
type Domain struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color Color  `json:"color"`
}
