package utm

import "strings"

// Normalize ensures a destination URL carries a scheme. Input with neither
// "http://" nor "https://" gets the https scheme prefixed; anything else is
// returned as-is after trimming. Empty input means "no URL supplied" and
// yields an empty string, not an error. The function is pure and idempotent.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
