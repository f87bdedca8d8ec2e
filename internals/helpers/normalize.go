package helper

import (
	"regexp"
	"strings"
)

/* ===============================
   Input normalization (JP forms)
=================================*/

// Permissive on purpose: real-world addresses, the upstream mailer is the
// final arbiter.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Hyphen-ish runes seen in Japanese phone input.
var phoneSeparators = map[rune]struct{}{
	'-': {}, 'ー': {}, '－': {}, '‐': {}, '―': {}, '−': {}, '/': {}, ' ': {}, '　': {},
	'(': {}, ')': {}, '（': {}, '）': {},
}

// NormalizePhone folds full-width digits to half-width and strips separators.
// "０９０ー１２３４ー５６７８" → "09012345678". Non-digit leftovers are kept
// so validation can reject them.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if _, skip := phoneSeparators[r]; skip {
			continue
		}
		if r >= '０' && r <= '９' {
			r = '0' + (r - '０')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsValidPhone checks a normalized phone string: digits only, 10-15 of them.
func IsValidPhone(normalized string) bool {
	if n := len(normalized); n < 10 || n > 15 {
		return false
	}
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// ClampAge bounds age to [0, 99]. Out-of-range values are clamped, not
// rejected, matching the number-input behavior of the forms.
func ClampAge(age int) int {
	if age < 0 {
		return 0
	}
	if age > 99 {
		return 99
	}
	return age
}
