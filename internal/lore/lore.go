// Package lore persists the intermediate hand-off artifact between the
// extraction stage and the chunking stage: one filtered, normalized
// document per page.
package lore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Entry is one page's processed content.
type Entry struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// TitleFor capitalizes a page label the way entries are titled.
func TitleFor(label string) string {
	if label == "" {
		return ""
	}
	r := []rune(label)
	return string(unicode.ToUpper(r[0])) + string(r[1:])
}

// Save writes entries as an indented JSON array in strict UTF-8 with no
// ASCII escaping, so multi-byte wiki content round-trips losslessly. Any
// write failure is fatal to the run: it invalidates all downstream
// chunking.
func Save(path string, entries []Entry) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode lore: %w", err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write lore: %w", err)
	}
	return nil
}

// Load reads a previously saved lore file.
func Load(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lore: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse lore %s: %w", path, err)
	}
	return entries, nil
}

// SaveText writes a human-readable companion dump of the same entries.
func SaveText(path string, entries []Entry) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(strings.Repeat("=", 40) + "\n")
		b.WriteString("PAGE NAME: " + strings.ToUpper(e.Title) + "\n")
		b.WriteString("URL: " + e.URL + "\n")
		b.WriteString(strings.Repeat("=", 40) + "\n")
		b.WriteString(e.Content)
		b.WriteString("\n\n")
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write lore text: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
