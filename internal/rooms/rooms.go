// Package rooms derives comparable room identifiers from the free-text
// room labels CABS emits, which mix bare numbers ("149/150 x34"),
// internal codes in parentheses ("(6117)"), letter-number tokens ("G10")
// and named rooms.
package rooms

import (
	"regexp"
	"strings"
)

var (
	leadingNumberPairRe = regexp.MustCompile(`^(\d+(?:/\d+)?)\b`)
	parenCodeRe         = regexp.MustCompile(`\((\d+(?:/\d+)*)\)`)
	digitRunRe          = regexp.MustCompile(`\d+`)
	mainRoomRe          = regexp.MustCompile(`^(\d+)\s+x\d+`)
	letterNumberSlashRe = regexp.MustCompile(`^([A-Z]?\d+)/([A-Za-z\d]+)`)
	letterNumberRe      = regexp.MustCompile(`^([A-Z]+\d+)`)
	slashPairRe         = regexp.MustCompile(`(\d+)/(\d+)`)
	leadingNumberRe     = regexp.MustCompile(`^(\d+)`)
	singleLetterRe      = regexp.MustCompile(`\b[A-Za-z]\b`)
	letterNumberPartsRe = regexp.MustCompile(`^([A-Za-z]+)(\d+)$`)
	nonAlnumRe          = regexp.MustCompile(`[^a-zA-Z0-9]`)
	allDigitsRe         = regexp.MustCompile(`^\d+$`)
)

// Rooms known by name rather than number.
var namedRooms = []string{"TERRACE SILKS"}

// ExtractCode extracts the single most significant room code from a raw
// room label, or "" when the label is empty. Precedence: leading number
// or number pair, parenthesized internal code, any embedded digit run,
// then the alphanumeric-stripped uppercased label.
func ExtractCode(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if m := leadingNumberPairRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := parenCodeRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := digitRunRe.FindString(raw); m != "" {
		return m
	}
	return strings.ToUpper(nonAlnumRe.ReplaceAllString(raw, ""))
}

// ExtractAllCodes expands a room label into every identifier it could be
// matched under, splitting slash-compound numbers ("149/150", "(6132/6133)")
// into individual codes. The result is deduplicated, insertion-ordered.
func ExtractAllCodes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var codes []string
	upper := strings.ToUpper(raw)
	for _, name := range namedRooms {
		if strings.Contains(upper, name) {
			codes = append(codes, name)
		}
	}

	// "122 x12 / (6122)": 122 is the primary room.
	if m := mainRoomRe.FindStringSubmatch(raw); m != nil {
		codes = append(codes, m[1])
	}

	if m := parenCodeRe.FindStringSubmatch(raw); m != nil {
		codes = append(codes, strings.Split(m[1], "/")...)
	}

	// "145/a", "S3/82", "M2/06".
	if m := letterNumberSlashRe.FindStringSubmatch(raw); m != nil {
		codes = append(codes, m[1], m[2])
	}

	// "G10", "S3": keep both the token and its numeric part.
	if m := letterNumberRe.FindStringSubmatch(raw); m != nil {
		codes = append(codes, m[1])
		if num := digitRunRe.FindString(m[1]); num != "" {
			codes = append(codes, num)
		}
	}

	if m := slashPairRe.FindStringSubmatch(raw); m != nil {
		codes = append(codes, m[1], m[2])
	}

	if len(codes) == 0 {
		if m := leadingNumberRe.FindStringSubmatch(raw); m != nil {
			codes = append(codes, m[1])
		}
	}

	codes = append(codes, singleLetterRe.FindAllString(raw, -1)...)

	seen := make(map[string]bool, len(codes))
	out := codes[:0]
	for _, c := range codes {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// CodesMatch reports whether two extracted room codes identify the same
// room: exactly equal, equal under letter+number decomposition (G10 = G10),
// or numerically equal under the site's 3/4-digit convention where a
// leading 6 is prepended to three-digit room numbers (121 = 6121).
func CodesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	am := letterNumberPartsRe.FindStringSubmatch(a)
	bm := letterNumberPartsRe.FindStringSubmatch(b)
	if am != nil && bm != nil {
		return strings.EqualFold(am[1], bm[1]) && am[2] == bm[2]
	}

	if allDigitsRe.MatchString(a) && allDigitsRe.MatchString(b) {
		return numericVariant(a) == numericVariant(b)
	}
	return false
}

// numericVariant maps a numeric room code to its canonical 3-digit form.
func numericVariant(code string) string {
	if len(code) == 4 && strings.HasPrefix(code, "6") {
		return code[1:]
	}
	return code
}
