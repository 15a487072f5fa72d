package knowledge

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"staystrong-chat-be/pkg/embedding"
)

// MinQueryLength is the shortest query (in characters, after trimming) worth embedding.
// Shorter inputs give unreliable vectors and rarely need grounding.
const MinQueryLength = 12

// Retriever turns a user query into zero or more bullet lines of approved context.
type Retriever struct {
	index    *Index
	embedder embedding.EmbeddingProvider
}

func NewRetriever(index *Index, embedder embedding.EmbeddingProvider) *Retriever {
	return &Retriever{index: index, embedder: embedder}
}

// Search returns the top k matches for query. Short queries return nothing without calling
// the embedding backend.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]Match, error) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return nil, nil
	}
	if r == nil || r.index == nil {
		return nil, ErrIndexNotBuilt
	}

	res, err := r.embedder.Generate(ctx, q, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return r.index.Search(embedding.NormalizeVector(res.Embedding.Values), k)
}

// Retrieve joins the top k snippet texts as "- " bullet lines.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) (string, error) {
	matches, err := r.Search(ctx, query, k)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}

	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = "- " + m.Snippet.Text
	}
	return strings.Join(lines, "\n"), nil
}
