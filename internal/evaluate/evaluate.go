// Package evaluate measures retrieval quality against a gold prompt set
// without invoking a chat model: it only checks that the right pages and
// snippets come back in the top-k chunks.
package evaluate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Nayrobie/minecraft-genie/internal/store"
)

// GoldPrompt is one evaluation item: a question, the snippets an answer
// must contain, and the page it should resolve to.
type GoldPrompt struct {
	Question               string   `json:"question"`
	ExpectedAnswerContains []string `json:"expected_answer_contains"`
	SourceLink             string   `json:"source_link"`
	Comment                string   `json:"comment"`
}

// LoadGoldPrompts reads and lightly validates the gold prompt file.
// Missing fields are warned about, never fatal: a partial prompt still
// contributes what it can.
func LoadGoldPrompts(path string) ([]GoldPrompt, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gold prompts: %w", err)
	}
	var prompts []GoldPrompt
	if err := json.Unmarshal(b, &prompts); err != nil {
		return nil, fmt.Errorf("parse gold prompts %s: %w", path, err)
	}
	for i, p := range prompts {
		if p.Question == "" || len(p.ExpectedAnswerContains) == 0 || p.SourceLink == "" || p.Comment == "" {
			log.Warn().Int("index", i).Str("question", p.Question).Msg("gold prompt has missing or empty fields")
		}
	}
	return prompts, nil
}

// Retriever returns the top-k chunks for a question, most relevant first.
type Retriever interface {
	Retrieve(ctx context.Context, question string, k int) ([]store.Hit, error)
}

// Row is the per-question evaluation record. Hit/MRR pointers are nil when
// the prompt carries no source link to score against.
type Row struct {
	Question               string   `json:"question"`
	ExpectedAnswerContains []string `json:"expected_answer_contains"`
	SourceLink             string   `json:"source_link"`
	K                      int      `json:"k"`
	HitAtKURL              *float64 `json:"hit_at_k_url"`
	MRRAtKURL              *float64 `json:"mrr_at_k_url"`
	ContainsAllAtK         float64  `json:"contains_all_at_k"`
	Top1URL                string   `json:"top1_url"`
	Top1Score              *float64 `json:"top1_score"`
	TopKURLs               []string `json:"topk_urls"`
	TopKTitles             []string `json:"topk_titles"`
	Comment                string   `json:"comment"`
}

// Summary aggregates the per-question metrics. URL metrics average only
// over prompts that have a source link.
type Summary struct {
	K              float64 `json:"k"`
	HitAtKURL      float64 `json:"hit_at_k_url"`
	MRRAtKURL      float64 `json:"mrr_at_k_url"`
	ContainsAllAtK float64 `json:"contains_all_at_k"`
}

// Run evaluates every prompt at cutoff k.
func Run(ctx context.Context, prompts []GoldPrompt, retriever Retriever, k int) ([]Row, Summary, error) {
	rows := make([]Row, 0, len(prompts))
	var hitSum, mrrSum, containsSum float64
	urlDenom := 0

	for i, item := range prompts {
		hits, err := retriever.Retrieve(ctx, item.Question, k)
		if err != nil {
			return nil, Summary{}, fmt.Errorf("retrieve %q: %w", item.Question, err)
		}

		expectedURL := NormalizeURL(item.SourceLink)
		hitTexts := make([]string, 0, len(hits))
		hitURLs := make([]string, 0, len(hits))
		hitTitles := make([]string, 0, len(hits))
		for _, h := range hits {
			hitTexts = append(hitTexts, NormalizeText(h.Text))
			hitURLs = append(hitURLs, NormalizeURL(RecoverURL(h)))
			hitTitles = append(hitTitles, h.Title)
		}

		row := Row{
			Question:               item.Question,
			ExpectedAnswerContains: item.ExpectedAnswerContains,
			SourceLink:             item.SourceLink,
			K:                      k,
			TopKURLs:               hitURLs,
			TopKTitles:             hitTitles,
			Comment:                item.Comment,
		}
		if len(hits) > 0 {
			row.Top1URL = hitURLs[0]
			score := hits[0].Score
			row.Top1Score = &score
		}

		if expectedURL != "" {
			urlDenom++
			hitAt, mrrAt := 0.0, 0.0
			for rank, u := range hitURLs {
				if u != "" && u == expectedURL {
					hitAt = 1.0
					mrrAt = 1.0 / float64(rank+1)
					break
				}
			}
			row.HitAtKURL = &hitAt
			row.MRRAtKURL = &mrrAt
			hitSum += hitAt
			mrrSum += mrrAt
		}

		containsAll := 0.0
		if len(item.ExpectedAnswerContains) > 0 && allSnippetsCovered(item.ExpectedAnswerContains, hitTexts) {
			containsAll = 1.0
		}
		row.ContainsAllAtK = containsAll
		containsSum += containsAll

		rows = append(rows, row)
		log.Info().
			Int("n", i+1).
			Bool("ok", containsAll == 1.0 || (row.HitAtKURL != nil && *row.HitAtKURL == 1.0)).
			Str("question", item.Question).
			Msg("evaluated")
	}

	summary := Summary{K: float64(k)}
	if urlDenom > 0 {
		summary.HitAtKURL = hitSum / float64(urlDenom)
		summary.MRRAtKURL = mrrSum / float64(urlDenom)
	}
	if len(prompts) > 0 {
		summary.ContainsAllAtK = containsSum / float64(len(prompts))
	}
	return rows, summary, nil
}

// allSnippetsCovered reports whether each snippet appears in at least one
// of the top-k chunk texts; they need not share a chunk.
func allSnippetsCovered(snippets, normTexts []string) bool {
	for _, s := range snippets {
		if s == "" {
			continue
		}
		norm := NormalizeText(s)
		found := false
		for _, t := range normTexts {
			if strings.Contains(t, norm) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// NormalizeURL reduces a URL to host+path for robust equality: scheme,
// query, fragment and a leading www. are ignored, trailing slashes
// trimmed, host lowercased.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		s := strings.ToLower(raw)
		s = strings.TrimPrefix(s, "https://")
		s = strings.TrimPrefix(s, "http://")
		s = strings.TrimSuffix(s, "/")
		return strings.TrimPrefix(s, "www.")
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	return host + strings.TrimSuffix(u.Path, "/")
}

var spaceRun = regexp.MustCompile(`\s+`)

// NormalizeText lowercases and collapses whitespace for substring matching.
func NormalizeText(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(strings.ToLower(s), " "))
}

var wikiURLRe = regexp.MustCompile(`https?://(?:www\.)?minecraft\.wiki[^\s)]*`)

// RecoverURL resolves a hit's source URL from metadata, falling back to a
// wiki link embedded in the chunk text when metadata is absent.
func RecoverURL(h store.Hit) string {
	if strings.TrimSpace(h.URL) != "" {
		return h.URL
	}
	return wikiURLRe.FindString(h.Text)
}

// SaveJSON writes an indented UTF-8 JSON file without ASCII escaping, the
// same convention as the lore artifact.
func SaveJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
