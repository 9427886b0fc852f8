package pkg

import "strings"

// TruncateChars shortens s to at most limit characters, appending an ellipsis
// when something was cut. The ellipsis counts toward the limit, so the result
// never exceeds limit runes.
func TruncateChars(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return strings.TrimRight(string(runes[:limit-1]), " \t\n") + "…"
}
