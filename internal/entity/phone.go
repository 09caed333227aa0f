package entity

import (
	"errors"
	"strings"
	"unicode"
)

var ErrInvalidPhone = errors.New("phone has no digits")

// NormalizePhone strips a channel prefix such as "whatsapp:" and every
// non-digit. The result may be empty.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, ':'); i > 0 && isLetters(s[:i]) {
		s = s[i+1:]
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
