package util

import (
	"strings"
)

// MaskIdentifier masks a username or similar identifier for log output,
// keeping only the first rune. "Jane" becomes "J***". Empty input yields "***".
func MaskIdentifier(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return "***"
	}

	return string(runes[0]) + "***"
}

// MaskEmail masks the local part of an email address for log output,
// keeping the first rune and the domain. "alice@example.com" becomes
// "a***@example.com". Input without "@" falls back to MaskIdentifier.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return MaskIdentifier(email)
	}

	return MaskIdentifier(email[:at]) + email[at:]
}

// Slugify lowercases a title and replaces runs of non-alphanumeric
// characters with single hyphens, producing a URL-safe slug.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastHyphen = false

			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
