package evaluate

import (
	"testing"

	"github.com/Nayrobie/minecraft-genie/internal/lore"
)

func TestCheckCoverage(t *testing.T) {
	entries := []lore.Entry{
		{Title: "Crafting", URL: "https://minecraft.wiki/w/Crafting", Content: "A torch needs one Stick and one Coal."},
		{Title: "Health", URL: "https://minecraft.wiki/w/Health", Content: "A golden apple restores 2½ hearts."},
	}
	prompts := []GoldPrompt{
		{Question: "torch?", ExpectedAnswerContains: []string{"stick", "coal"}, SourceLink: "https://minecraft.wiki/w/Crafting"},
		{Question: "apple?", ExpectedAnswerContains: []string{"2½ hearts", "notch apple"}, SourceLink: "https://minecraft.wiki/w/Health"},
	}

	report := CheckCoverage(prompts, entries)
	if report.TotalQuestions != 2 || report.TotalSnippets != 4 {
		t.Fatalf("totals wrong: %+v", report)
	}
	if report.FoundSnippets != 3 {
		t.Fatalf("found = %d, want 3", report.FoundSnippets)
	}
	if len(report.Missing) != 1 || report.Missing[0].Snippet != "notch apple" || report.Missing[0].Question != "apple?" {
		t.Fatalf("missing wrong: %+v", report.Missing)
	}
}

func TestCheckCoverage_UnicodeCanonicalization(t *testing.T) {
	// The corpus uses a fraction slash and zero-width characters; the
	// snippet uses a plain slash. Both sides canonicalize the same way.
	entries := []lore.Entry{
		{Title: "Mobs", URL: "https://minecraft.wiki/w/Mob", Content: "Deals 1 ⁄ 2 heart‌[BE only]"},
	}
	prompts := []GoldPrompt{
		{Question: "damage?", ExpectedAnswerContains: []string{"1/2 heart [be only]"}},
	}
	report := CheckCoverage(prompts, entries)
	if report.FoundSnippets != 1 || len(report.Missing) != 0 {
		t.Fatalf("expected canonicalized match, got %+v", report)
	}
}
