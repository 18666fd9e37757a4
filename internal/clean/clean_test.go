package clean

import (
	"strings"
	"testing"
)

func TestFilter_RemovesContentsSection(t *testing.T) {
	in := "H2: Contents\nfoo\nH2: Trading\nbar"
	got := Filter(in)
	if got != "H2: Trading\nbar" {
		t.Fatalf("expected contents section removed, got %q", got)
	}
}

func TestFilter_RemovesDenylistedH2Sections(t *testing.T) {
	in := "H2: Usage\nkeep this\nH2: History\nold versions\nmore history\nH2: Brewing\nalso keep"
	got := Filter(in)
	if strings.Contains(got, "old versions") || strings.Contains(got, "more history") {
		t.Fatalf("expected history section removed, got %q", got)
	}
	if !strings.Contains(got, "keep this") || !strings.Contains(got, "also keep") {
		t.Fatalf("expected surrounding sections kept, got %q", got)
	}
}

func TestFilter_H2SectionAtEndOfText(t *testing.T) {
	in := "H2: Usage\nkeep\nH2: References\n1. some citation"
	got := Filter(in)
	if strings.Contains(got, "citation") {
		t.Fatalf("expected trailing references removed, got %q", got)
	}
	if got != "H2: Usage\nkeep" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestFilter_CaseInsensitiveSectionNames(t *testing.T) {
	in := "h2: gallery\npictures\nH2: Usage\nkeep"
	got := Filter(in)
	if strings.Contains(got, "pictures") {
		t.Fatalf("expected lowercase header matched, got %q", got)
	}
}

func TestFilter_H3SectionStopsAtNextH2(t *testing.T) {
	// The nested H3 section must not swallow the following top-level one.
	in := "H3: Joke mobs\nlove golem\nH2: Spawning\nreal content"
	got := Filter(in)
	if strings.Contains(got, "love golem") {
		t.Fatalf("expected joke mobs removed, got %q", got)
	}
	if !strings.Contains(got, "H2: Spawning") || !strings.Contains(got, "real content") {
		t.Fatalf("expected following H2 section kept, got %q", got)
	}
}

func TestFilter_H3SectionStopsAtNextH3(t *testing.T) {
	in := "H3: Removed mobs\ngone\nH3: Passive mobs\nsheep"
	got := Filter(in)
	if strings.Contains(got, "gone") {
		t.Fatalf("expected removed mobs section gone, got %q", got)
	}
	if !strings.Contains(got, "sheep") {
		t.Fatalf("expected following H3 kept, got %q", got)
	}
}

func TestFilter_AdjacentDenylistedSections(t *testing.T) {
	in := "H2: Video\nclip\nH2: Video\nanother clip\nH2: Usage\nkeep"
	got := Filter(in)
	if strings.Contains(got, "clip") {
		t.Fatalf("expected both video sections removed, got %q", got)
	}
	if !strings.Contains(got, "keep") {
		t.Fatalf("expected usage kept, got %q", got)
	}
}

func TestFilter_StripsFootnoteLetters(t *testing.T) {
	cases := []struct{ in, want string }{
		{"↑abcd See the wiki", "↑ See the wiki"},
		{"↑abCited text", "↑Cited text"},
		{"↑ab↑cd Next", "↑↑ Next"},
		{"word↑", "word↑"},
	}
	for _, tc := range cases {
		if got := Filter(tc.in); got != tc.want {
			t.Fatalf("Filter(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFilter_FootnoteLettersAtEndOfTextKept(t *testing.T) {
	// No following character means the letters cannot be reference
	// markers; the source ambiguity is left alone.
	if got := Filter("see note ↑abc"); got != "see note ↑abc" {
		t.Fatalf("expected trailing letters kept, got %q", got)
	}
}

func TestFilter_RemovesCraftingBanner(t *testing.T) {
	in := "BasicBlocksToolsDefenceMechanismFoodOtherDyeWoolBrewing\nTorch | Stick + Coal | Image\n[Back to top]"
	got := Filter(in)
	if strings.Contains(got, "BasicBlocks") || strings.Contains(got, "| Image") || strings.Contains(got, "[Back to top]") {
		t.Fatalf("expected banner artifacts removed, got %q", got)
	}
	if !strings.Contains(got, "Torch | Stick + Coal") {
		t.Fatalf("expected table row kept, got %q", got)
	}
}

func TestFilter_BannerArtifactsKeptWithoutBanner(t *testing.T) {
	// " | Image" removal only applies alongside the crafting banner.
	in := "Torch | Stick + Coal | Image"
	if got := Filter(in); got != in {
		t.Fatalf("expected text untouched, got %q", got)
	}
}

func TestFilter_NoMatchesIsNoOp(t *testing.T) {
	in := "H2: Trading\nEmeralds are currency."
	if got := Filter(in); got != in {
		t.Fatalf("expected no-op, got %q", got)
	}
}
