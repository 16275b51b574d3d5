package titles

import "strings"

// NormalizeURL trims raw and defaults it to https when it carries no
// http(s) scheme. Blank input stays blank; callers treat that as invalid.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}
