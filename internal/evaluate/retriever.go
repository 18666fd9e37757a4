package evaluate

import (
	"context"
	"fmt"

	"github.com/Nayrobie/minecraft-genie/internal/embed"
	"github.com/Nayrobie/minecraft-genie/internal/store"
)

// VectorRetriever answers questions by embedding them and running a
// similarity search over the chunk index. Questions must embed with the
// same model the index was built under.
type VectorRetriever struct {
	Embedder *embed.Embedder
	Index    *store.Store
}

func (r *VectorRetriever) Retrieve(ctx context.Context, question string, k int) ([]store.Hit, error) {
	vec, err := r.Embedder.Query(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	return r.Index.Search(ctx, vec, k)
}
