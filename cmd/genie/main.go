package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nayrobie/minecraft-genie/internal/app"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath   string
		lorePath     string
		loreTextPath string
		indexPath    string
		llmBaseURL   string
		llmModel     string
		llmKey       string
		chunkSize    int
		chunkOverlap int
		minChunkLen  int
		userAgent    string
		cacheDir     string
		cacheMaxAge  time.Duration
		dryRun       bool
		verbose      bool
	)

	flag.StringVar(&configPath, "config", "", "Path to optional YAML config file")
	flag.StringVar(&lorePath, "out", "data/lore.json", "Path to write the lore JSON artifact")
	flag.StringVar(&loreTextPath, "out.text", "", "Optional path for a human-readable text dump")
	flag.StringVar(&indexPath, "db", "db/minecraft_lore.db", "Path to the SQLite chunk index")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("EMBED_MODEL"), "Embedding model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("OPENAI_API_KEY"), "API key for the embeddings endpoint")
	flag.IntVar(&chunkSize, "chunk.size", 0, "Target chunk size in characters (default 512)")
	flag.IntVar(&chunkOverlap, "chunk.overlap", 0, "Overlap between consecutive chunks in characters (default 50)")
	flag.IntVar(&minChunkLen, "chunk.minChars", 0, "Minimum trimmed chunk length to keep (default 30)")
	flag.StringVar(&userAgent, "ua", "", "Custom User-Agent for page fetches")
	flag.StringVar(&cacheDir, "cache.dir", "", "Directory for fetched page snapshots; empty disables caching")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max snapshot age before refetch (e.g. 24h); 0 means never expire")
	flag.BoolVar(&dryRun, "dry-run", false, "Scrape and save lore only; skip embedding and indexing")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		LorePath:     lorePath,
		LoreTextPath: loreTextPath,
		IndexPath:    indexPath,
		LLMBaseURL:   llmBaseURL,
		LLMModel:     llmModel,
		LLMAPIKey:    llmKey,
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		MinChunkLen:  minChunkLen,
		UserAgent:    userAgent,
		CacheDir:     cacheDir,
		CacheMaxAge:  cacheMaxAge,
		DryRun:       dryRun,
		Verbose:      verbose,
	}
	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("config file")
		}
		fc.Merge(&cfg)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.New(cfg).Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("ingestion failed")
	}
}
