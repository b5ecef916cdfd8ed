package util

import (
	"strings"
	"unicode"
)

// MaxPathSegment bounds the length of SafePathSegment's result.
const MaxPathSegment = 128

// SanitizeEnvValue strips one pair of matching surrounding quotes, which
// .env files and shell exports commonly leave in place.
func SanitizeEnvValue(s string) string {
	s = strings.TrimSpace(s)
	if n := len(s); n >= 2 && (s[0] == '"' || s[0] == '\'') && s[n-1] == s[0] {
		s = s[1 : n-1]
	}
	return strings.TrimSpace(s)
}

// SafePathSegment maps s onto [A-Za-z0-9._-] so it can name one directory
// in a storage key. Control characters are dropped, other runes become '_'
// and the result is cut to MaxPathSegment bytes. It returns "" for input
// that would leave no real name, including "." and "..".
func SafePathSegment(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if b.Len() == MaxPathSegment {
			break
		}
		switch {
		case unicode.IsControl(r):
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)),
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "." || out == ".." || strings.Trim(out, "_") == "" {
		return ""
	}
	return out
}
