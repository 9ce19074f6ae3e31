// Package security holds path and filename hygiene helpers for user-supplied
// strings that end up on the filesystem.
package security

import "strings"

// SanitizeFilename makes a safe filename component from an arbitrary string.
// Chart group names and run identifiers flow into output file names, so any
// character outside ASCII letters, digits, dot, underscore or dash becomes an
// underscore. Repeated underscores collapse and the result is capped at a
// reasonable length.
func SanitizeFilename(s string) string {
	if s == "" {
		return "unknown"
	}
	const maxLen = 128
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}
