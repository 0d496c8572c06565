package utils

import "strings"

// Slugify derives a URL slug from a title: lowercase, whitespace runs
// collapsed to single hyphens. The result is not checked for uniqueness
// here; callers must still run it through the usual duplicate check.
func Slugify(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(title))), "-")
}
