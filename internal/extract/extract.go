package extract

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/Nayrobie/minecraft-genie/internal/wiki"
)

// Kind classifies an extracted fragment.
type Kind int

const (
	KindIconLabel Kind = iota
	KindTable
	KindHeader
	KindList
	KindParagraph
)

// Fragment is one classified, formatted unit of extracted page text.
// Fragments are immutable; their position in the returned slice is their
// position in the source markup.
type Fragment struct {
	Kind Kind
	Text string
}

// relevantTags are the element types the ordered walk visits, anywhere in
// the tree, in document order.
var relevantTags = map[string]bool{
	"p": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "div": true,
}

// Fragments parses raw HTML and returns the ordered fragment sequence for
// one page. Elements matching no classification rule are skipped silently;
// malformed markup never produces an error, only fewer fragments.
func Fragments(input []byte, pageURL string, flags wiki.SiteFlags) []Fragment {
	root, err := html.Parse(bytes.NewReader(input))
	if err != nil || root == nil {
		return nil
	}

	removeEditAffordances(root)

	ctx := ruleContext{flags: flags, origin: wiki.Origin(pageURL)}

	var out []Fragment
	// Sites whose real content is prose before one big data table would be
	// reduced to table rows alone; capture that prose first.
	if flags.StructuredTable {
		if intro := introBeforeFirstTable(root); intro != "" {
			out = append(out, Fragment{Kind: KindParagraph, Text: intro})
		}
	}

	walkElements(root, func(n *html.Node) {
		if frag, ok := classify(n, ctx); ok {
			out = append(out, frag)
		}
	})
	return out
}

// PageContent returns the newline-joined fragment text for one page, the
// form the section filter operates on.
func PageContent(input []byte, pageURL string, flags wiki.SiteFlags) string {
	frags := Fragments(input, pageURL, flags)
	parts := make([]string, 0, len(frags))
	for _, f := range frags {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, "\n")
}

// walkElements visits every relevant element in document order, including
// nested ones.
func walkElements(root *html.Node, visit func(*html.Node)) {
	var dfs func(*html.Node)
	dfs = func(n *html.Node) {
		if n.Type == html.ElementNode && relevantTags[tagName(n)] {
			visit(n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(root)
}

// removeEditAffordances strips wiki section-edit controls so visible text
// never contains "[edit]" artifacts.
func removeEditAffordances(root *html.Node) {
	var doomed []*html.Node
	var dfs func(*html.Node)
	dfs = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch tagName(n) {
			case "span", "a":
				if hasAnyClass(n, "mw-editsection", "mw-editsection-bracket") {
					doomed = append(doomed, n)
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(root)
	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

var whitespaceRun = regexp.MustCompile(`\s{2,}`)

// introBeforeFirstTable collects the prose that occurs before the first
// table of the main content container. Container resolution is best-effort:
// a semantic main region, then the parser-output class, then the generic
// content id, then the document body.
func introBeforeFirstTable(root *html.Node) string {
	main := findFirstTag(root, "main")
	if main == nil {
		main = findFirstClass(root, "mw-parser-output")
	}
	if main == nil {
		main = findFirstID(root, "content")
	}
	if main == nil {
		main = findFirstTag(root, "body")
	}
	if main == nil {
		return ""
	}

	var parts []string
	if findFirstTag(main, "table") == nil {
		// No tables at all; keep every paragraph.
		var dfs func(*html.Node)
		dfs = func(n *html.Node) {
			if n.Type == html.ElementNode && tagName(n) == "p" {
				if t := nodeText(n, " "); t != "" {
					parts = append(parts, t)
				}
				return
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				dfs(c)
			}
		}
		dfs(main)
	} else {
		// Direct children only, stopping the moment a table is reached.
		for c := main.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if tagName(c) == "table" {
				break
			}
			if name := tagName(c); name == "p" || name == "div" {
				if t := nodeText(c, " "); t != "" {
					parts = append(parts, t)
				}
			}
		}
	}
	intro := strings.Join(parts, " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(intro, " "))
}

// --- small DOM helpers over x/net/html nodes ---

func tagName(n *html.Node) string {
	return strings.ToLower(n.Data)
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func classList(n *html.Node) []string {
	return strings.Fields(attrVal(n, "class"))
}

func hasAnyClass(n *html.Node, names ...string) bool {
	for _, c := range classList(n) {
		for _, want := range names {
			if c == want {
				return true
			}
		}
	}
	return false
}

func findFirstTag(n *html.Node, tag string) *html.Node {
	return findFirst(n, func(c *html.Node) bool { return tagName(c) == tag })
}

func findFirstClass(n *html.Node, class string) *html.Node {
	return findFirst(n, func(c *html.Node) bool { return hasAnyClass(c, class) })
}

func findFirstID(n *html.Node, id string) *html.Node {
	return findFirst(n, func(c *html.Node) bool { return attrVal(c, "id") == id })
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur != n && cur.Type == html.ElementNode && match(cur) {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(n)
	return res
}

// findAllTag returns every descendant element whose tag matches one of the
// given names, in document order.
func findAllTag(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur != n && cur.Type == html.ElementNode {
			name := tagName(cur)
			for _, t := range tags {
				if name == t {
					out = append(out, cur)
					break
				}
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(n)
	return out
}

// nextSiblingMatch returns the first following element sibling satisfying
// match, skipping text nodes and non-matching elements.
func nextSiblingMatch(n *html.Node, match func(*html.Node) bool) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode && match(s) {
			return s
		}
	}
	return nil
}

// nodeText renders the visible text of a subtree: each text node trimmed,
// empties dropped, the rest joined with sep.
func nodeText(n *html.Node, sep string) string {
	var parts []string
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			if t := strings.TrimSpace(cur.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(n)
	return strings.Join(parts, sep)
}
