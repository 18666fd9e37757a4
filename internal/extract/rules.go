package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/Nayrobie/minecraft-genie/internal/wiki"
)

// ruleContext carries the per-page state the rules need: the site behavior
// flags and the page origin for resolving relative links.
type ruleContext struct {
	flags  wiki.SiteFlags
	origin string
}

// rule inspects one element and either claims it (optionally producing a
// fragment) or passes. A claimed element is never offered to lower-priority
// rules, even when the claim produced no output.
type rule func(n *html.Node, ctx ruleContext) (frag Fragment, emit bool, claimed bool)

// rules is the fixed priority order; first match wins, no fallthrough.
var rules = []rule{
	iconLabelRule,
	tableRule,
	headerRule,
	listRule,
	paragraphRule,
}

// classify applies the rule chain to one element. ok is true only when a
// rule produced a fragment; elements matching no rule are skipped silently.
func classify(n *html.Node, ctx ruleContext) (Fragment, bool) {
	for _, r := range rules {
		frag, emit, claimed := r(n, ctx)
		if claimed {
			return frag, emit
		}
	}
	return Fragment{}, false
}

// iconLabelRule extracts the label of an icon/mob-icon container. The label
// is resolved in order: a following sibling name container, a child name
// container, an image's alt or title text, the container's own text. A
// matching name container with empty text still claims the element.
func iconLabelRule(n *html.Node, _ ruleContext) (Fragment, bool, bool) {
	if tagName(n) != "div" || !hasAnyClass(n, "icon", "mob-icon") {
		return Fragment{}, false, false
	}

	isNameDiv := func(c *html.Node) bool {
		return tagName(c) == "div" && hasAnyClass(c, "name", "mob-name")
	}
	if sib := nextSiblingMatch(n, isNameDiv); sib != nil {
		return iconFragment(nodeText(sib, ""))
	}
	if child := findFirst(n, isNameDiv); child != nil {
		return iconFragment(nodeText(child, ""))
	}
	if img := findFirstTag(n, "img"); img != nil {
		label := attrVal(img, "alt")
		if label == "" {
			label = attrVal(img, "title")
		}
		if label != "" {
			return iconFragment(label)
		}
	}
	return iconFragment(nodeText(n, ""))
}

func iconFragment(label string) (Fragment, bool, bool) {
	if label == "" {
		return Fragment{}, false, true
	}
	return Fragment{Kind: KindIconLabel, Text: "IMAGE_LABEL: " + label}, true, true
}

// tableRule renders a table as a TABLE: block with one pipe-joined line per
// row. Rows whose cells are all empty are dropped; a table with no surviving
// rows emits nothing.
func tableRule(n *html.Node, _ ruleContext) (Fragment, bool, bool) {
	if tagName(n) != "table" {
		return Fragment{}, false, false
	}
	var rows []string
	for _, tr := range findAllTag(n, "tr") {
		var cells []string
		for _, cell := range findAllTag(tr, "th", "td") {
			if t := nodeText(cell, ""); t != "" {
				cells = append(cells, t)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " | "))
		}
	}
	if len(rows) == 0 {
		return Fragment{}, false, true
	}
	return Fragment{Kind: KindTable, Text: "TABLE:\n" + strings.Join(rows, "\n")}, true, true
}

// headerRule renders h1..h6 with non-empty text as "H2: <text>" style lines.
func headerRule(n *html.Node, _ ruleContext) (Fragment, bool, bool) {
	name := tagName(n)
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
	default:
		return Fragment{}, false, false
	}
	text := nodeText(n, "")
	if text == "" {
		return Fragment{}, false, true
	}
	return Fragment{Kind: KindHeader, Text: strings.ToUpper(name) + ": " + text}, true, true
}

// listRule renders list items as "- item" lines. On links-only pages, items
// containing a hyperlink become Markdown links with site-relative hrefs
// resolved against the page origin; items without one fall back to plain text.
func listRule(n *html.Node, ctx ruleContext) (Fragment, bool, bool) {
	name := tagName(n)
	if name != "ul" && name != "ol" {
		return Fragment{}, false, false
	}
	items := findAllTag(n, "li")
	if len(items) == 0 {
		return Fragment{}, false, false
	}
	var lines []string
	for _, li := range items {
		if ctx.flags.LinksOnly {
			if a := findFirstTag(li, "a"); a != nil && attrVal(a, "href") != "" {
				href := attrVal(a, "href")
				if strings.HasPrefix(href, "/") {
					href = ctx.origin + href
				}
				lines = append(lines, "- ["+nodeText(a, " ")+"]("+href+")")
				continue
			}
		}
		if t := nodeText(li, " "); t != "" {
			lines = append(lines, "- "+t)
		}
	}
	if len(lines) == 0 {
		return Fragment{}, false, true
	}
	return Fragment{Kind: KindList, Text: strings.Join(lines, "\n")}, true, true
}

// paragraphRule renders paragraph text, unless the site's content is assumed
// already captured by the table rule and the intro pass.
func paragraphRule(n *html.Node, ctx ruleContext) (Fragment, bool, bool) {
	if tagName(n) != "p" {
		return Fragment{}, false, false
	}
	if ctx.flags.StructuredTable {
		return Fragment{}, false, true
	}
	text := nodeText(n, " ")
	if text == "" {
		return Fragment{}, false, true
	}
	return Fragment{Kind: KindParagraph, Text: text}, true, true
}
