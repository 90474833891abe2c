package logger

import "strings"

// RedactEmail masks the local part of an address for log output,
// keeping the first two characters and the domain.
func RedactEmail(email string) string {
	name, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if r := []rune(name); len(r) > 2 {
		return string(r[:2]) + "***@" + domain
	}
	return "***@" + domain
}
