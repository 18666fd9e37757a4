package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
lore:
  json: data/lore.json
  text: data/lore.txt
index: db/index.db
llm:
  base: http://localhost:8090/v1
  model: text-embedding-3-small
  key: sk-test
chunk:
  size: 300
  overlap: 20
  minChars: 20
fetch:
  userAgent: lore-bot/1.0
  cacheDir: .cache/pages
  cacheMaxAge: 24h
dryRun: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	fc, err := LoadFileConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}
	if fc.Lore.JSON != "data/lore.json" || fc.Index != "db/index.db" {
		t.Fatalf("paths wrong: %+v", fc)
	}
	if fc.LLM.BaseURL != "http://localhost:8090/v1" || fc.LLM.Model != "text-embedding-3-small" {
		t.Fatalf("llm wrong: %+v", fc.LLM)
	}
	if fc.Chunk.Size != 300 || fc.Chunk.Overlap != 20 || fc.Chunk.MinChars != 20 {
		t.Fatalf("chunk wrong: %+v", fc.Chunk)
	}
	if fc.Fetch.CacheMaxAge != 24*time.Hour {
		t.Fatalf("cacheMaxAge = %v", fc.Fetch.CacheMaxAge)
	}
	if !fc.DryRun {
		t.Fatal("expected dryRun true")
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	if _, err := LoadFileConfig(writeConfig(t, "lore: [not: a: mapping")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}

func TestMerge_FlagsWin(t *testing.T) {
	fc, err := LoadFileConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}
	cfg := Config{
		LorePath:  "flag.json",
		ChunkSize: 512,
	}
	fc.Merge(&cfg)

	if cfg.LorePath != "flag.json" {
		t.Fatalf("flag value overridden: %q", cfg.LorePath)
	}
	if cfg.ChunkSize != 512 {
		t.Fatalf("flag value overridden: %d", cfg.ChunkSize)
	}
	if cfg.LoreTextPath != "data/lore.txt" || cfg.IndexPath != "db/index.db" {
		t.Fatalf("file values not filled: %+v", cfg)
	}
	if cfg.ChunkOverlap != 20 || cfg.MinChunkLen != 20 {
		t.Fatalf("chunk values not filled: %+v", cfg)
	}
	if cfg.UserAgent != "lore-bot/1.0" || cfg.CacheDir != ".cache/pages" || cfg.CacheMaxAge != 24*time.Hour {
		t.Fatalf("fetch values not filled: %+v", cfg)
	}
	if !cfg.DryRun {
		t.Fatal("expected dryRun carried from file")
	}
}
