// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import "strings"

// Normalize collapses every run of whitespace, newlines and tabs included,
// to a single space and trims both ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeQuestion removes literal <br> tokens and then applies Normalize.
// Question text arrives HTML-escaped inside a textarea, so line breaks
// survive parsing as literal markup.
func NormalizeQuestion(s string) string {
	return Normalize(strings.ReplaceAll(s, lineBreakToken, ""))
}
