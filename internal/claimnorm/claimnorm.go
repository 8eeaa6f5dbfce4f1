// Package claimnorm implements the one pure function every name-keyed row
// in package prefixes relies on but does not itself enforce: folding a
// submitted claim name down to the form stored as normalized_name.
//
// This is a narrow, protocol-specific text transform rather than a general
// Unicode concern, so it is built directly on unicode/strings rather than
// an ecosystem text-processing library (see DESIGN.md).
package claimnorm

import (
	"strings"
	"unicode"
)

// Normalize case-folds name the way the row layer's normalized_name fields
// expect. Callers (block ingestion) are expected to call this before
// PackValue; the row layer itself stores whatever string it is given and
// never normalizes on its own.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
