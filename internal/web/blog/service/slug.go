package service

import "strings"

// slugify converts a name or title to a URL-safe slug: lowercase
// ASCII letters and digits, runs of anything else collapsed into a
// single hyphen. Deterministic and idempotent, so names differing
// only in case or whitespace collide on purpose.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
