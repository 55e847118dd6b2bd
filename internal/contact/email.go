package contact

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// CleanEmail strips surrounding angle brackets and whitespace, repairs the
// "[at]" obfuscation and returns the result if the whole string is a valid
// address. Anything else yields "".
func CleanEmail(raw string) string {
	email := strings.TrimFunc(raw, func(r rune) bool {
		return r == '<' || r == '>' || unicode.IsSpace(r)
	})
	email = strings.ReplaceAll(email, "[at]", "@")
	if !emailPattern.MatchString(email) {
		return ""
	}
	return email
}
