package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional single-file YAML configuration. Flags take
// precedence over file values; the file only fills what flags left at
// their zero value.
type FileConfig struct {
	Lore struct {
		JSON string `yaml:"json"`
		Text string `yaml:"text"`
	} `yaml:"lore"`

	Index string `yaml:"index"`

	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
	} `yaml:"llm"`

	Chunk struct {
		Size     int `yaml:"size"`
		Overlap  int `yaml:"overlap"`
		MinChars int `yaml:"minChars"`
	} `yaml:"chunk"`

	Fetch struct {
		UserAgent   string        `yaml:"userAgent"`
		CacheDir    string        `yaml:"cacheDir"`
		CacheMaxAge time.Duration `yaml:"cacheMaxAge"`
	} `yaml:"fetch"`

	DryRun  bool `yaml:"dryRun"`
	Verbose bool `yaml:"verbose"`
}

// LoadFileConfig parses a YAML config file.
func LoadFileConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// Merge fills zero-valued fields of cfg from the file config.
func (fc *FileConfig) Merge(cfg *Config) {
	if cfg.LorePath == "" {
		cfg.LorePath = fc.Lore.JSON
	}
	if cfg.LoreTextPath == "" {
		cfg.LoreTextPath = fc.Lore.Text
	}
	if cfg.IndexPath == "" {
		cfg.IndexPath = fc.Index
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = fc.Chunk.Size
	}
	if cfg.ChunkOverlap == 0 {
		cfg.ChunkOverlap = fc.Chunk.Overlap
	}
	if cfg.MinChunkLen == 0 {
		cfg.MinChunkLen = fc.Chunk.MinChars
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = fc.Fetch.CacheDir
	}
	if cfg.CacheMaxAge == 0 {
		cfg.CacheMaxAge = fc.Fetch.CacheMaxAge
	}
	cfg.DryRun = cfg.DryRun || fc.DryRun
	cfg.Verbose = cfg.Verbose || fc.Verbose
}
