package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nayrobie/minecraft-genie/internal/embed"
	"github.com/Nayrobie/minecraft-genie/internal/evaluate"
	"github.com/Nayrobie/minecraft-genie/internal/lore"
	"github.com/Nayrobie/minecraft-genie/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		goldPath    string
		indexPath   string
		lorePath    string
		k           int
		resultsPath string
		summaryPath string
		pdfPath     string
		llmBaseURL  string
		llmModel    string
		llmKey      string
		coverage    bool
		verbose     bool
	)

	flag.StringVar(&goldPath, "gold", "evaluation/gold_prompts.json", "Path to the gold prompts file")
	flag.StringVar(&indexPath, "db", "db/minecraft_lore.db", "Path to the SQLite chunk index")
	flag.StringVar(&lorePath, "lore", "data/lore.json", "Path to the lore artifact (for coverage checks)")
	flag.IntVar(&k, "k", 5, "Top-k cutoff for retrieval")
	flag.StringVar(&resultsPath, "out", "evaluation/retriever_eval_results.json", "Path for per-question results")
	flag.StringVar(&summaryPath, "out.summary", "evaluation/retriever_eval_summary.json", "Path for summary metrics")
	flag.StringVar(&pdfPath, "report.pdf", "", "Optional path for a PDF summary report")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("EMBED_MODEL"), "Embedding model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("OPENAI_API_KEY"), "API key for the embeddings endpoint")
	flag.BoolVar(&coverage, "coverage", false, "Also report which gold snippets are missing from the lore corpus")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx := context.Background()

	prompts, err := evaluate.LoadGoldPrompts(goldPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load gold prompts")
	}
	log.Info().Int("count", len(prompts)).Str("path", goldPath).Msg("loaded gold prompts")

	if coverage {
		entries, err := lore.Load(lorePath)
		if err != nil {
			log.Fatal().Err(err).Msg("load lore for coverage check")
		}
		report := evaluate.CheckCoverage(prompts, entries)
		log.Info().
			Int("snippets", report.TotalSnippets).
			Int("found", report.FoundSnippets).
			Int("missing", len(report.Missing)).
			Msg("corpus coverage")
		for _, m := range report.Missing {
			log.Warn().Str("snippet", m.Snippet).Str("source", m.SourceLink).Msg("missing from corpus")
		}
	}

	idx, err := store.Open(indexPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open index")
	}
	defer idx.Close()
	if n, err := idx.Count(ctx); err == nil {
		log.Info().Int("chunks", n).Str("path", indexPath).Msg("index opened")
	}

	retriever := &evaluate.VectorRetriever{
		Embedder: &embed.Embedder{
			Client: embed.NewOpenAIProvider(llmKey, llmBaseURL),
			Model:  llmModel,
		},
		Index: idx,
	}

	rows, summary, err := evaluate.Run(ctx, prompts, retriever, k)
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}

	if err := evaluate.SaveJSON(resultsPath, rows); err != nil {
		log.Fatal().Err(err).Msg("save results")
	}
	if err := evaluate.SaveJSON(summaryPath, summary); err != nil {
		log.Fatal().Err(err).Msg("save summary")
	}
	if pdfPath != "" {
		if err := evaluate.WritePDFReport(rows, summary, pdfPath); err != nil {
			log.Fatal().Err(err).Msg("write pdf report")
		}
	}

	log.Info().
		Float64("hit_at_k_url", summary.HitAtKURL).
		Float64("mrr_at_k_url", summary.MRRAtKURL).
		Float64("contains_all_at_k", summary.ContainsAllAtK).
		Msg("evaluation complete")
}
