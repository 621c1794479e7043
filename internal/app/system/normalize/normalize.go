// Package normalize canonicalizes the string identifiers that flow in from
// requests, CSV cells, and the provider, so comparisons and storage keys are
// consistent.
package normalize

import "strings"

// LoginID lowercases and trims a login identifier.
func LoginID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TeamType canonicalizes a team type: trimmed, lowercased, spaces and dashes
// collapsed to underscores ("Portfolio II" -> "portfolio_ii").
func TeamType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// Name trims a display name and collapses internal whitespace runs.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Role lowercases and trims a role string.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
