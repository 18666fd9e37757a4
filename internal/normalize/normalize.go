// Package normalize canonicalizes the Unicode artifacts wiki markup leaves
// behind so chunk text matches what users actually type in questions.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// U+2044 fraction slash, with or without surrounding spaces.
	fractionRe = regexp.MustCompile(`\s*\x{2044}\s*`)
	// Zero-width joiner or non-joiner glued to an edition marker.
	editionRe = regexp.MustCompile(`[\x{200c}\x{200d}]+\[(BE|JE) only\]`)
)

var zeroWidth = strings.NewReplacer("‌", "", "​", "")

// Text canonicalizes one document's content before chunking. Applying it
// twice yields the same result as applying it once.
func Text(s string) string {
	s = editionRe.ReplaceAllString(s, " [$1 only]")
	s = fractionRe.ReplaceAllString(s, "/")
	s = zeroWidth.Replace(s)
	return norm.NFC.String(s)
}
