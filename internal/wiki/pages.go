package wiki

import (
	"net/url"
	"strings"
)

// TutorialsURL is the index page whose list items are rendered as links
// instead of plain text, so the assistant can hand the links back to users.
const TutorialsURL = "https://minecraft.wiki/w/Tutorials"

// CraftingHost identifies the external crafting-recipe site whose content
// lives in one big data table preceded by unstructured prose.
const CraftingHost = "minecraftcrafting.info"

// Page is one source document to ingest: a logical label (unique per run)
// and the URL it is fetched from.
type Page struct {
	Label string
	URL   string
}

// Pages is the fixed set of wiki pages the knowledge base is built from.
var Pages = []Page{
	{Label: "trading", URL: "https://minecraft.wiki/w/Trading"},
	{Label: "brewing", URL: "https://minecraft.wiki/w/Brewing"},
	{Label: "enchanting", URL: "https://minecraft.wiki/w/Enchanting"},
	{Label: "mobs", URL: "https://minecraft.wiki/w/Mob"},
	{Label: "blocks", URL: "https://minecraft.wiki/w/Block"},
	{Label: "items", URL: "https://minecraft.wiki/w/Item"},
	{Label: "crafting information", URL: "https://minecraft.wiki/w/Crafting"},
	{Label: "crafting recipes", URL: "https://www.minecraftcrafting.info"},
	{Label: "smelting", URL: "https://minecraft.wiki/w/Smelting"},
	{Label: "tutorials", URL: TutorialsURL},
	{Label: "redstone", URL: "https://minecraft.wiki/w/Redstone_circuits"},
}

// SiteFlags carries the per-site extraction exceptions, computed once per
// page and threaded into the rules that need them.
type SiteFlags struct {
	// LinksOnly renders list items as Markdown links; set for the
	// tutorials index, which is nothing but links.
	LinksOnly bool
	// StructuredTable suppresses paragraph extraction in favour of the
	// intro-plus-table capture used for the crafting-recipe site.
	StructuredTable bool
}

// FlagsFor derives the extraction exceptions for a page URL.
func FlagsFor(pageURL string) SiteFlags {
	return SiteFlags{
		LinksOnly:       pageURL == TutorialsURL,
		StructuredTable: IsCraftingSite(pageURL),
	}
}

// IsCraftingSite reports whether the URL belongs to the crafting-recipe site.
func IsCraftingSite(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(u.Host), CraftingHost)
}

// Origin returns the scheme://host prefix of a page URL, used to resolve
// site-relative links. Empty when the URL does not parse.
func Origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
