package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// PageCache stores fetched page snapshots on disk as <key>.html plus
// <key>.json metadata, key = sha256(url). Wiki pages change slowly, so a
// simple age check replaces conditional revalidation. No eviction policy.
type PageCache struct {
	Dir string
	// MaxAge bounds how old a snapshot may be and still be served.
	// Zero means snapshots never expire.
	MaxAge time.Duration
}

type snapshotMeta struct {
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (c *PageCache) key(url string) string {
	h := sha256.Sum256([]byte(url))
	return hex.EncodeToString(h[:])
}

func (c *PageCache) bodyPath(key string) string { return filepath.Join(c.Dir, key+".html") }
func (c *PageCache) metaPath(key string) string { return filepath.Join(c.Dir, key+".json") }

// Load returns a cached snapshot when present and fresh.
func (c *PageCache) Load(url string) ([]byte, bool) {
	if c == nil || c.Dir == "" {
		return nil, false
	}
	key := c.key(url)
	mb, err := os.ReadFile(c.metaPath(key))
	if err != nil {
		return nil, false
	}
	var meta snapshotMeta
	if err := json.Unmarshal(mb, &meta); err != nil {
		return nil, false
	}
	if c.MaxAge > 0 && time.Since(meta.FetchedAt) > c.MaxAge {
		return nil, false
	}
	body, err := os.ReadFile(c.bodyPath(key))
	if err != nil {
		return nil, false
	}
	return body, true
}

// Save records a snapshot. Body first, meta last, so a crash never leaves
// metadata pointing at a missing body.
func (c *PageCache) Save(url string, body []byte) error {
	if c == nil || c.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	key := c.key(url)
	if err := os.WriteFile(c.bodyPath(key), body, 0o644); err != nil {
		return err
	}
	mb, err := json.Marshal(snapshotMeta{URL: url, FetchedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	tmp := c.metaPath(key) + ".tmp"
	if err := os.WriteFile(tmp, mb, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.metaPath(key))
}
