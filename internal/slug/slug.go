// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from post titles.
package slug

import (
	"regexp"
	"strings"
)

// Placeholder is returned when the input yields no slug characters at all.
const Placeholder = "untitled"

// nonAlphanumeric matches any run of characters that is not a lower-case
// letter or digit. Each run collapses to a single hyphen.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given title.
// Example: "Derby de Bunia: un final!" → "derby-de-bunia-un-final"
// An input with no alphanumeric characters falls back to Placeholder.
func Generate(title string) string {
	result := strings.ToLower(strings.TrimSpace(title))
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if result == "" {
		return Placeholder
	}
	return result
}
