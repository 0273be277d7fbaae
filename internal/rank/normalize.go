package rank

import "strings"

// Normalize lowercases text and collapses all whitespace runs (newlines
// included) to single spaces. Every matcher runs over normalized text.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
