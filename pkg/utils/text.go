package utils

import "strings"

// Truncate shortens a string to at most n runes, appending an ellipsis when cut.
func Truncate(input string, n int) string {
	runes := []rune(input)
	if len(runes) <= n {
		return input
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}

// CollapseWhitespace trims the string and folds runs of whitespace into single spaces.
func CollapseWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
