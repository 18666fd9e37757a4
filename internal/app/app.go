// Package app wires the ingestion pipeline together: fetch each page,
// extract and filter its content, persist the lore artifact, then chunk,
// embed and index.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nayrobie/minecraft-genie/internal/chunk"
	"github.com/Nayrobie/minecraft-genie/internal/clean"
	"github.com/Nayrobie/minecraft-genie/internal/embed"
	"github.com/Nayrobie/minecraft-genie/internal/extract"
	"github.com/Nayrobie/minecraft-genie/internal/fetch"
	"github.com/Nayrobie/minecraft-genie/internal/lore"
	"github.com/Nayrobie/minecraft-genie/internal/normalize"
	"github.com/Nayrobie/minecraft-genie/internal/store"
	"github.com/Nayrobie/minecraft-genie/internal/wiki"
)

const defaultUserAgent = "minecraft-genie/1.0 (+https://github.com/Nayrobie/minecraft-genie)"

// App runs one full ingestion pass over the fixed page set.
type App struct {
	cfg     Config
	fetcher *fetch.Client
}

func New(cfg Config) *App {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	f := &fetch.Client{
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       3,
		PerRequestTimeout: 30 * time.Second,
	}
	if cfg.CacheDir != "" {
		f.Cache = &fetch.PageCache{Dir: cfg.CacheDir, MaxAge: cfg.CacheMaxAge}
	}
	return &App{cfg: cfg, fetcher: f}
}

// Run processes pages one at a time: each page is fully extracted, filtered
// and normalized before the next begins. A page that fails to fetch is
// recorded with empty content and the run continues.
func (a *App) Run(ctx context.Context) error {
	entries := make([]lore.Entry, 0, len(wiki.Pages))
	for _, page := range wiki.Pages {
		log.Info().Str("label", page.Label).Str("url", page.URL).Msg("scraping page")
		content, err := a.processPage(ctx, page)
		if err != nil {
			log.Error().Err(err).Str("label", page.Label).Msg("page fetch failed; recording empty content")
			content = ""
		}
		entries = append(entries, lore.Entry{
			Title:   lore.TitleFor(page.Label),
			URL:     page.URL,
			Content: content,
		})
	}

	if err := lore.Save(a.cfg.LorePath, entries); err != nil {
		return err
	}
	log.Info().Int("pages", len(entries)).Str("path", a.cfg.LorePath).Msg("saved lore")
	if a.cfg.LoreTextPath != "" {
		if err := lore.SaveText(a.cfg.LoreTextPath, entries); err != nil {
			return err
		}
	}

	chunks := a.chunkEntries(entries)
	log.Info().Int("chunks", len(chunks)).Msg("chunking complete")

	if a.cfg.DryRun {
		log.Info().Msg("dry run: skipping embedding and indexing")
		return nil
	}
	return a.index(ctx, chunks)
}

func (a *App) processPage(ctx context.Context, page wiki.Page) (string, error) {
	body, err := a.fetcher.Page(ctx, page.URL)
	if err != nil {
		return "", err
	}
	flags := wiki.FlagsFor(page.URL)
	content := extract.PageContent(body, page.URL, flags)
	content = clean.Filter(content)
	return normalize.Text(content), nil
}

func (a *App) chunkCfg() chunk.Config {
	cfg := chunk.DefaultConfig()
	if a.cfg.ChunkSize > 0 {
		cfg.Size = a.cfg.ChunkSize
	}
	if a.cfg.ChunkOverlap > 0 {
		cfg.Overlap = a.cfg.ChunkOverlap
	}
	if a.cfg.MinChunkLen > 0 {
		cfg.MinChars = a.cfg.MinChunkLen
	}
	return cfg
}

func (a *App) chunkEntries(entries []lore.Entry) []chunk.Chunk {
	cfg := a.chunkCfg()
	var all []chunk.Chunk
	for _, e := range entries {
		chunks := chunk.Split(e.Content, e.Title, e.URL, cfg)
		if len(chunks) == 0 {
			// Not an error: the page contributes nothing retrievable.
			log.Warn().Str("title", e.Title).Msg("page produced zero chunks; coverage gap")
			continue
		}
		all = append(all, chunks...)
	}
	return all
}

func (a *App) index(ctx context.Context, chunks []chunk.Chunk) error {
	embedder := &embed.Embedder{
		Client: embed.NewOpenAIProvider(a.cfg.LLMAPIKey, a.cfg.LLMBaseURL),
		Model:  a.cfg.LLMModel,
	}
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	vectors, err := embedder.Texts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}

	idx, err := store.Open(a.cfg.IndexPath)
	if err != nil {
		return err
	}
	defer idx.Close()
	if err := idx.Replace(ctx, chunks, vectors); err != nil {
		return err
	}
	log.Info().Int("chunks", len(chunks)).Str("path", a.cfg.IndexPath).Msg("index built")
	return nil
}
