package markdown

import "strings"

// CountWords returns the number of whitespace-separated words in a
// document's plaintext projection.
func CountWords(plain string) int {
	return len(strings.Fields(plain))
}
