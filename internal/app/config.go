package app

import "time"

// Config holds runtime configuration for an ingestion run.
type Config struct {
	// Output artifacts
	LorePath     string // JSON intermediate, one entry per page
	LoreTextPath string // optional human-readable dump; empty disables
	IndexPath    string // SQLite chunk index

	// LLM endpoint for embeddings
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Chunking
	ChunkSize    int
	ChunkOverlap int
	MinChunkLen  int

	// Fetching
	UserAgent   string
	CacheDir    string
	CacheMaxAge time.Duration

	// Behavior
	DryRun  bool // scrape and save lore only; skip embedding and indexing
	Verbose bool
}
