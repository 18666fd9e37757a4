// Package chunk splits a normalized document into overlapping,
// provenance-tagged windows sized for embedding.
package chunk

import (
	"strings"
)

// Config controls chunking behavior. Sizes are in characters.
type Config struct {
	Size     int // target window size
	Overlap  int // characters carried from one window into the next
	MinChars int // minimum trimmed body length to keep a chunk
}

// DefaultConfig returns the current pipeline generation's defaults. An
// earlier generation ran 300/20; both are valid configurations.
func DefaultConfig() Config {
	return Config{Size: 512, Overlap: 50, MinChars: 30}
}

// Chunk is one window of a document plus the provenance needed to resolve
// answers back to their source page.
type Chunk struct {
	Text        string
	SourceTitle string
	SourceURL   string
	// ChunkSize is the character length of the body before the
	// provenance wrapping is added.
	ChunkSize int
}

// Split cuts one document into chunks. Paragraph boundaries are preferred;
// oversized paragraphs fall back to sentence boundaries, and a sentence
// longer than a whole window is cut at the window edge. Windows below
// MinChars after trimming are treated as noise and dropped. A document
// yielding zero chunks is a coverage gap for the caller to log, not an
// error.
func Split(content, title, sourceURL string, cfg Config) []Chunk {
	if cfg.Size <= 0 {
		cfg = DefaultConfig()
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.Size {
		cfg.Overlap = DefaultConfig().Overlap % cfg.Size
	}
	p := packer{cfg: cfg}
	for _, para := range paragraphs(content) {
		if len([]rune(para)) <= cfg.Size {
			p.add(para)
			continue
		}
		for _, sent := range sentences(para) {
			p.add(sent)
		}
	}
	p.finish()

	out := make([]Chunk, 0, len(p.bodies))
	for _, body := range p.bodies {
		if len([]rune(strings.TrimSpace(body))) < cfg.MinChars {
			continue
		}
		out = append(out, Chunk{
			Text:        wrap(body, title, sourceURL),
			SourceTitle: title,
			SourceURL:   sourceURL,
			ChunkSize:   len([]rune(body)),
		})
	}
	return out
}

// wrap frames a chunk body with its provenance so the source stays
// recoverable even if metadata is later lost, and so URL keywords remain
// searchable in the raw text.
func wrap(body, title, sourceURL string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(sourceURL)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\nSource: ")
	b.WriteString(sourceURL)
	return b.String()
}

// packer accumulates units into fixed-budget windows. After each emitted
// window the tail Overlap characters seed the next one, so consecutive
// bodies share that span exactly.
type packer struct {
	cfg    Config
	bodies []string
	cur    []rune
	// content marks that cur holds material beyond the seeded overlap;
	// a window is only emitted when it does.
	content bool
}

func (p *packer) add(unit string) {
	r := []rune(unit)
	if p.content && len(p.cur)+1+len(r) > p.cfg.Size {
		p.emit()
	}
	if len(p.cur) > 0 {
		p.cur = append(p.cur, '\n')
	}
	if len(p.cur)+len(r) <= p.cfg.Size {
		p.cur = append(p.cur, r...)
		p.content = true
		return
	}
	// The unit overflows the window even on its own: fill and spill at
	// the window edge.
	for len(r) > 0 {
		space := p.cfg.Size - len(p.cur)
		if space <= 0 {
			p.content = true
			p.emit()
			space = p.cfg.Size - len(p.cur)
		}
		take := space
		if take > len(r) {
			take = len(r)
		}
		p.cur = append(p.cur, r[:take]...)
		p.content = true
		r = r[take:]
	}
	if len(p.cur) >= p.cfg.Size {
		p.emit()
	}
}

// emit closes the current window and seeds the next with its tail.
func (p *packer) emit() {
	if !p.content || len(p.cur) == 0 {
		return
	}
	body := string(p.cur)
	p.bodies = append(p.bodies, body)
	if p.cfg.Overlap > 0 && len(p.cur) > p.cfg.Overlap {
		seed := make([]rune, p.cfg.Overlap)
		copy(seed, p.cur[len(p.cur)-p.cfg.Overlap:])
		p.cur = seed
	} else if p.cfg.Overlap > 0 {
		// window shorter than the overlap: carry it whole
		p.cur = append([]rune(nil), p.cur...)
	} else {
		p.cur = nil
	}
	p.content = false
}

// finish emits whatever real content remains; a bare overlap seed is
// discarded rather than duplicated as its own chunk.
func (p *packer) finish() {
	if p.content && len(p.cur) > 0 {
		p.bodies = append(p.bodies, string(p.cur))
	}
	p.cur = nil
	p.content = false
}

// paragraphs returns the non-empty trimmed lines of the document. Extracted
// documents join fragments with single newlines, so a line is the natural
// paragraph unit here.
func paragraphs(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// sentences does basic clause splitting: a break after '.', '!' or '?'
// followed by a space.
func sentences(text string) []string {
	var out []string
	var cur strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		cur.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && runes[i+1] == ' ' {
			if s := strings.TrimSpace(cur.String()); s != "" {
				out = append(out, s)
			}
			cur.Reset()
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		out = append(out, s)
	}
	return out
}
