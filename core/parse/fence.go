package parse

import "strings"

const (
	jsonFence = "```json"
	bareFence = "```"
)

// StripCodeFences trims s, removes every "```json" and "```" marker wherever
// it occurs, and trims again. Markers inside string values are removed too;
// the models this targets do not emit backticks inside the object.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, jsonFence, "")
	s = strings.ReplaceAll(s, bareFence, "")
	return strings.TrimSpace(s)
}
