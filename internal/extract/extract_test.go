package extract

import (
	"strings"
	"testing"

	"github.com/Nayrobie/minecraft-genie/internal/wiki"
)

func TestFragments_PreservesDocumentOrder(t *testing.T) {
	html := `<!doctype html>
	<html><body>
	  <h2>Trading</h2>
	  <p>Villagers trade emeralds.</p>
	  <table><tr><td>Item</td><td>Price</td></tr></table>
	  <ul><li>First offer</li><li>Second offer</li></ul>
	</body></html>`

	frags := Fragments([]byte(html), "https://minecraft.wiki/w/Trading", wiki.SiteFlags{})
	if len(frags) != 4 {
		t.Fatalf("expected 4 fragments, got %d: %#v", len(frags), frags)
	}
	wantKinds := []Kind{KindHeader, KindParagraph, KindTable, KindList}
	for i, k := range wantKinds {
		if frags[i].Kind != k {
			t.Fatalf("fragment %d: expected kind %d, got %d (%q)", i, k, frags[i].Kind, frags[i].Text)
		}
	}
	if frags[0].Text != "H2: Trading" {
		t.Fatalf("unexpected header fragment: %q", frags[0].Text)
	}
}

func TestFragments_SkipsUnmatchedElements(t *testing.T) {
	html := `<html><body>
	  <div class="infobox">sidebar noise</div>
	  <p>Real content.</p>
	</body></html>`

	frags := Fragments([]byte(html), "https://minecraft.wiki/w/Block", wiki.SiteFlags{})
	if len(frags) != 1 {
		t.Fatalf("expected only the paragraph, got %d fragments", len(frags))
	}
	if frags[0].Text != "Real content." {
		t.Fatalf("unexpected fragment: %q", frags[0].Text)
	}
}

func TestFragments_RemovesEditAffordances(t *testing.T) {
	html := `<html><body>
	  <h2>Usage<span class="mw-editsection"><a href="/edit">edit</a></span></h2>
	</body></html>`

	content := PageContent([]byte(html), "https://minecraft.wiki/w/Item", wiki.SiteFlags{})
	if content != "H2: Usage" {
		t.Fatalf("expected edit affordance stripped, got %q", content)
	}
}

func TestFragments_MalformedMarkupDoesNotPanic(t *testing.T) {
	html := `<html><body><p>unclosed <table><tr><td>cell`
	frags := Fragments([]byte(html), "https://minecraft.wiki/w/Mob", wiki.SiteFlags{})
	if len(frags) == 0 {
		t.Fatalf("expected fragments from recoverable markup")
	}
}

func TestIntroBeforeFirstTable_CollectsProseOnly(t *testing.T) {
	html := `<html><body><main>
	  <p>Welcome   to the crafting guide.</p>
	  <div>Recipes below.</div>
	  <table><tr><td>Torch</td><td>Stick + Coal</td></tr></table>
	  <p>After-table prose is skipped.</p>
	</main></body></html>`

	frags := Fragments([]byte(html), "https://www.minecraftcrafting.info", wiki.SiteFlags{StructuredTable: true})
	if len(frags) < 2 {
		t.Fatalf("expected intro plus table, got %d fragments", len(frags))
	}
	if frags[0].Kind != KindParagraph {
		t.Fatalf("expected intro fragment first, got kind %d", frags[0].Kind)
	}
	if frags[0].Text != "Welcome to the crafting guide. Recipes below." {
		t.Fatalf("unexpected intro text: %q", frags[0].Text)
	}
	for _, f := range frags {
		if strings.Contains(f.Text, "After-table prose") {
			t.Fatalf("paragraph should be suppressed on structured-table site: %q", f.Text)
		}
	}
}

func TestIntroBeforeFirstTable_NoTablesKeepsParagraphs(t *testing.T) {
	html := `<html><body><main>
	  <p>Only prose here.</p>
	  <p>Second paragraph.</p>
	</main></body></html>`

	frags := Fragments([]byte(html), "https://www.minecraftcrafting.info", wiki.SiteFlags{StructuredTable: true})
	if len(frags) != 1 {
		t.Fatalf("expected single intro fragment, got %d", len(frags))
	}
	if frags[0].Text != "Only prose here. Second paragraph." {
		t.Fatalf("unexpected intro text: %q", frags[0].Text)
	}
}
