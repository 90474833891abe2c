package intake

import (
	"strings"
	"unicode/utf8"
)

// MaxFieldLength caps every free-text field, in runes.
const MaxFieldLength = 200

var bracketStripper = strings.NewReplacer("<", "", ">", "")

// Sanitize trims s, removes angle brackets and truncates it to MaxFieldLength.
func Sanitize(s string) string {
	s = stripBrackets(s)
	if utf8.RuneCountInString(s) > MaxFieldLength {
		s = string([]rune(s)[:MaxFieldLength])
	}
	return strings.TrimSpace(s)
}

// NormalizeEmail trims, strips angle brackets and lower-cases an address.
// It never truncates: an over-long address is left for the validator to
// reject rather than shortened into a different one.
func NormalizeEmail(s string) string {
	return strings.ToLower(stripBrackets(s))
}

func stripBrackets(s string) string {
	return strings.TrimSpace(bracketStripper.Replace(strings.TrimSpace(s)))
}

// stringField returns input[key] when it holds a string, "" otherwise.
func stringField(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return s
}
