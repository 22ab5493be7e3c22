package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultMaxStringLength is the default maximum length, in runes, for truncated strings
	DefaultMaxStringLength = 500
)

// JSONToString serialises object to JSON without HTML escaping, so &, < and >
// in extracted values print as-is. When indent is true the output uses two-space indentation. On
// failure it returns a JSON-formatted error string rather than panicking.
func JSONToString(object any, indent ...bool) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if len(indent) > 0 && indent[0] {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(object); err != nil {
		return "{\"error\": \"failed to marshal to JSON: " + err.Error() + "\"}"
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// TruncateString shortens s to at most maxLen runes, appending a suffix that
// records the original rune count. Cutting on rune boundaries keeps multi-byte
// input (Chinese sentences, emoji) valid UTF-8. If maxLen is zero or negative,
// [DefaultMaxStringLength] is used instead.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	total := utf8.RuneCountInString(s)
	if total <= maxLen {
		return s
	}
	runes := []rune(s)
	return fmt.Sprintf("%s... (truncated, total: %d chars)", string(runes[:maxLen]), total)
}

// TruncateStringDefault truncates a string using DefaultMaxStringLength
func TruncateStringDefault(s string) string {
	return TruncateString(s, DefaultMaxStringLength)
}
