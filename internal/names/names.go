// Package names canonicalizes free-text person names so that hosts and
// visitors coming from different CABS reports can be matched without a
// shared key.
package names

import (
	"regexp"
	"strings"
)

var (
	honorificRe = regexp.MustCompile(`(?i)\b(mr|mrs|miss|ms|dr|prof)\b\.?\s*`)
	parenRe     = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	wordRe      = regexp.MustCompile(`^[a-zA-Z\-'.]+$`)
)

// CABS reuses the contact field for operational annotations, so host
// discovery has to reject entries that are not people.
var nonPersonTokens = []string{
	"clear room check",
	"room check",
	"clear room",
	"maintenance",
	"cleaning",
	"setup",
	"occupied",
	"available",
	"reserved",
	"blocked",
	"system",
	"admin",
	"test",
	"check",
}

// Normalize lower-cases a raw name, strips honorifics and parenthetical
// suffixes, folds known non-ASCII letters, and collapses whitespace.
// It always returns a string ("" for empty input) and is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := honorificRe.ReplaceAllString(raw, "")
	s = parenRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "ë", "e")
	s = strings.ReplaceAll(s, "Ë", "E")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// NameParts holds the tokenized form of a normalized name.
type NameParts struct {
	First string
	Last  string
	Parts []string
}

// ExtractFirstLast splits the normalized form of raw into tokens.
// First and Last are empty when the name has no tokens.
func ExtractFirstLast(raw string) NameParts {
	parts := strings.Fields(Normalize(raw))
	np := NameParts{Parts: parts}
	if len(parts) > 0 {
		np.First = parts[0]
		np.Last = parts[len(parts)-1]
	}
	return np
}

// IsPersonName reports whether raw plausibly names a real person:
// no operational tokens, at least two words after normalization, each
// word 2-20 characters of letters, hyphens, apostrophes or dots.
func IsPersonName(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, token := range nonPersonTokens {
		if strings.Contains(lower, token) {
			return false
		}
	}

	words := strings.Fields(Normalize(trimmed))
	if len(words) < 2 {
		return false
	}
	for _, word := range words {
		if len(word) < 2 || len(word) > 20 {
			return false
		}
		if !wordRe.MatchString(word) {
			return false
		}
	}
	return true
}

var titleSet = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "miss": true, "dr": true, "prof": true,
}

// FormatHostName produces the display form "Firstname Lastname" from the
// raw CABS spelling, which may be "Title Firstname Lastname" or
// "Lastname Firstname Title".
func FormatHostName(hostRaw string) string {
	parts := strings.Fields(strings.TrimSpace(hostRaw))
	switch {
	case len(parts) >= 3 && titleSet[strings.ToLower(parts[0])]:
		// "Mr John Smith" -> "John Smith"
		return parts[1] + " " + parts[2]
	case len(parts) >= 3:
		// "Smith John Mr" -> "John Smith"
		return parts[1] + " " + parts[0]
	case len(parts) == 2:
		return parts[0] + " " + parts[1]
	}
	return hostRaw
}
