// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import "errors"

// Failure conditions reported by the extractor. Callers match them with
// errors.Is; the wrapped message carries the offending id or path.
var (
	ErrInputNotFound     = errors.New("input not found")
	ErrStructureNotFound = errors.New("questions container not found")
	ErrMalformedQuestion = errors.New("malformed question")
	ErrMalformedAnswer   = errors.New("malformed answer")
	ErrOrphanAnswer      = errors.New("orphan answer")
)

// IsStructural reports whether err means the page does not follow the
// expected quiz layout.
func IsStructural(err error) bool {
	return errors.Is(err, ErrStructureNotFound) ||
		errors.Is(err, ErrMalformedQuestion) ||
		errors.Is(err, ErrMalformedAnswer) ||
		errors.Is(err, ErrOrphanAnswer)
}
