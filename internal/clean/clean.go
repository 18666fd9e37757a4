// Package clean removes unwanted sections and markup artifacts from the
// flattened text of one extracted page. It deliberately operates on the
// whole document string rather than during the element walk: section
// boundaries in the source markup are not reliably nested, so text-level
// pattern removal is the pragmatic, testable choice.
package clean

import (
	"regexp"
	"strings"
)

// unwantedH2Sections are removed from their "H2: <name>" line up to the
// next H2 header or end of text.
var unwantedH2Sections = []string{
	"Data values",
	"Sounds",
	"Video",
	"History",
	"Issues",
	"Gallery",
	"See also",
	"Screenshots",
	"References",
	"External links",
	"Navigation",
	"Changed recipes",
	"Complete recipe list",
}

// unwantedH3Sections are removed up to the next H3 or H2 header, so a
// nested section never swallows the top-level section that follows it.
var unwantedH3Sections = []string{
	"Unused mobs",
	"Education mobs",
	"Removed mobs",
	"Joke mobs",
	"Unimplemented mobs",
	"Mentioned mobs",
	"Education blocks",
	"Removed blocks",
	"Joke blocks",
}

// craftingBanner is the crafting-recipe site's navigation menu rendered
// with no whitespace between items. Its presence marks the page as carrying
// the site's other table artifacts too.
const craftingBanner = "BasicBlocksToolsDefenceMechanismFoodOtherDyeWoolBrewing"

var (
	contentsRe   = sectionRe("Contents", "H2: ")
	h2SectionRes = make([]*regexp.Regexp, 0, len(unwantedH2Sections))
	h3SectionRes = make([]*regexp.Regexp, 0, len(unwantedH3Sections))
	footnoteRe   = regexp.MustCompile(`↑[a-z]+`)
)

func init() {
	for _, name := range unwantedH2Sections {
		h2SectionRes = append(h2SectionRes, sectionRe(name, "H2: "))
	}
	for _, name := range unwantedH3Sections {
		h3SectionRes = append(h3SectionRes, sectionRe(name, "H3: ", "H2: "))
	}
}

// sectionRe builds a case-insensitive, newline-spanning pattern that
// matches from "H2: <name>" (or H3) up to, but not including, the next
// header of any of the stop levels or end of text. RE2 has no lookahead,
// so the stop marker is captured and restored on replacement.
func sectionRe(name string, stops ...string) *regexp.Regexp {
	level := stops[0]
	alts := make([]string, 0, len(stops)+1)
	for _, s := range stops {
		alts = append(alts, regexp.QuoteMeta(s))
	}
	alts = append(alts, `\z`)
	return regexp.MustCompile(`(?is)` + regexp.QuoteMeta(level+name) + `.*?(` + strings.Join(alts, "|") + `)`)
}

// Filter removes denylisted sections and reference artifacts from one
// document's text. Patterns that match nothing are no-ops.
func Filter(text string) string {
	text = removeSections(text, contentsRe)
	for _, re := range h2SectionRes {
		text = removeSections(text, re)
	}
	for _, re := range h3SectionRes {
		text = removeSections(text, re)
	}
	text = stripFootnoteLetters(text)
	if strings.Contains(text, craftingBanner) {
		text = strings.ReplaceAll(text, craftingBanner, "")
		text = strings.ReplaceAll(text, " | Image", "")
		text = strings.ReplaceAll(text, "[Back to top]", "")
	}
	return strings.TrimSpace(text)
}

// removeSections applies a section pattern until the text stops changing.
// The captured stop header is consumed by each match, so back-to-back
// occurrences of the same section need another round.
func removeSections(text string, re *regexp.Regexp) string {
	for {
		out := re.ReplaceAllString(text, "$1")
		if out == text {
			return out
		}
		text = out
	}
}

// stripFootnoteLetters drops the disambiguation letters that follow a
// footnote back-reference glyph when a multiply-cited footnote renders as
// "↑abc". The glyph is kept; the letters go. A greedy lowercase run always
// ends at a non-lowercase character, which is exactly the boundary the
// reference letters carry, so the only run left alone is one that reaches
// end of text. Adjacent references ("↑ab↑cd") each clean independently.
func stripFootnoteLetters(text string) string {
	matches := footnoteRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, m := range matches {
		if m[1] >= len(text) {
			break
		}
		b.WriteString(text[pos:m[0]])
		b.WriteString("↑")
		pos = m[1]
	}
	b.WriteString(text[pos:])
	return b.String()
}
