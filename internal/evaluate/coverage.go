package evaluate

import (
	"strings"

	"github.com/Nayrobie/minecraft-genie/internal/lore"
	"github.com/Nayrobie/minecraft-genie/internal/normalize"
)

// MissingSnippet is one expected answer fragment that the scraped corpus
// does not contain; it points at a scraping gap, not a retrieval problem.
type MissingSnippet struct {
	Question   string `json:"question"`
	Snippet    string `json:"snippet"`
	SourceLink string `json:"source_link"`
}

// CoverageReport summarizes which gold snippets the corpus can possibly
// answer. When everything is found, effort belongs in chunking and
// embedding, not scraping.
type CoverageReport struct {
	TotalQuestions int              `json:"total_questions"`
	TotalSnippets  int              `json:"total_snippets"`
	FoundSnippets  int              `json:"found_snippets"`
	Missing        []MissingSnippet `json:"missing"`
}

// CheckCoverage searches every gold snippet in the combined lore content,
// using the same Unicode canonicalization the chunker sees plus case
// folding, so cosmetic differences don't count as gaps.
func CheckCoverage(prompts []GoldPrompt, entries []lore.Entry) CoverageReport {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Content)
	}
	corpus := searchForm(strings.Join(parts, "\n\n"))

	report := CoverageReport{TotalQuestions: len(prompts)}
	for _, p := range prompts {
		for _, snippet := range p.ExpectedAnswerContains {
			report.TotalSnippets++
			if strings.Contains(corpus, searchForm(snippet)) {
				report.FoundSnippets++
				continue
			}
			report.Missing = append(report.Missing, MissingSnippet{
				Question:   p.Question,
				Snippet:    snippet,
				SourceLink: p.SourceLink,
			})
		}
	}
	return report
}

func searchForm(s string) string {
	return strings.ToLower(normalize.Text(s))
}
