package redact

import "strings"

// Partial returns the display form of a secret: the first 6 and last 4
// characters with an ellipsis between. Values too short to survive that
// split are masked entirely.
func Partial(secret string) string {
	if len(secret) <= 10 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:6] + "…" + secret[len(secret)-4:]
}
