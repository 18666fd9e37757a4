// Package store persists embedded chunks in SQLite and answers top-k
// similarity queries over them.
package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Nayrobie/minecraft-genie/internal/chunk"
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL,
	url        TEXT NOT NULL,
	chunk_size INTEGER NOT NULL,
	body       TEXT NOT NULL,
	embedding  BLOB NOT NULL
);
`

// Store is a SQLite-backed chunk index. Embeddings are stored as
// little-endian float32 blobs.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the index at path, creating parent directories
// as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Replace clears the index and inserts chunks with their vectors in one
// transaction. chunks and vectors must be index-aligned.
func (s *Store) Replace(ctx context.Context, chunks []chunk.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("replace: %d chunks but %d vectors", len(chunks), len(vectors))
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO chunks (title, url, chunk_size, body, embedding) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range chunks {
		if _, err := stmt.ExecContext(ctx, c.SourceTitle, c.SourceURL, c.ChunkSize, c.Text, vectorToBytes(vectors[i])); err != nil {
			return fmt.Errorf("insert chunk %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of indexed chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

// Hit is one retrieved chunk with its similarity score.
type Hit struct {
	Title     string
	URL       string
	ChunkSize int
	Text      string
	Score     float64
}

// Search returns the k chunks most similar to the query vector by cosine
// similarity. Ties break on insertion order so results stay deterministic.
func (s *Store) Search(ctx context.Context, query []float32, k int) ([]Hit, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, url, chunk_size, body, embedding FROM chunks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("scan chunks: %w", err)
	}
	defer rows.Close()

	type scored struct {
		hit Hit
		id  int64
	}
	var all []scored
	for rows.Next() {
		var (
			id   int64
			h    Hit
			blob []byte
		)
		if err := rows.Scan(&id, &h.Title, &h.URL, &h.ChunkSize, &h.Text, &blob); err != nil {
			return nil, fmt.Errorf("scan chunk row: %w", err)
		}
		h.Score = cosine(query, bytesToVector(blob))
		all = append(all, scored{hit: h, id: id})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].hit.Score != all[j].hit.Score {
			return all[i].hit.Score > all[j].hit.Score
		}
		return all[i].id < all[j].id
	})
	if k > 0 && len(all) > k {
		all = all[:k]
	}
	out := make([]Hit, 0, len(all))
	for _, s := range all {
		out = append(out, s.hit)
	}
	return out, nil
}

// cosine computes cosine similarity; zero when either vector is empty or
// lengths differ.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) []float32 {
	v := make([]float32, len(data)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return v
}
