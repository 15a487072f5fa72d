package knowledge

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"staystrong-chat-be/pkg/embedding"
)

var (
	// ErrIndexNotBuilt means the vector blob or its metadata is missing. Run cmd/build_index.
	ErrIndexNotBuilt = errors.New("knowledge index not built")
	// ErrIndexMismatch means vectors and metadata are not row-aligned.
	ErrIndexMismatch = errors.New("knowledge index vectors and metadata are not aligned")
)

// Snippet is one pre-approved passage of the curated corpus.
type Snippet struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Topic     string    `json:"topic"`
	Embedding []float32 `json:"-"`
}

// Match is a snippet with its cosine similarity to a query.
type Match struct {
	Snippet Snippet
	Score   float64
}

// Source yields the corpus in insertion order.
type Source interface {
	Load(ctx context.Context) ([]Snippet, error)
}

// Index is immutable after construction and safe to share between requests.
type Index struct {
	snippets []Snippet
	dim      int
}

// NewIndex copies snippets, re-normalizes their vectors and checks that every vector has the
// same dimension.
func NewIndex(snippets []Snippet) (*Index, error) {
	if len(snippets) == 0 {
		return nil, fmt.Errorf("%w: corpus is empty", ErrIndexNotBuilt)
	}

	dim := len(snippets[0].Embedding)
	out := make([]Snippet, len(snippets))
	for i, s := range snippets {
		if len(s.Embedding) == 0 || len(s.Embedding) != dim {
			return nil, fmt.Errorf("%w: snippet %q has dimension %d, want %d", ErrIndexMismatch, s.ID, len(s.Embedding), dim)
		}
		s.Embedding = embedding.NormalizeVector(s.Embedding)
		out[i] = s
	}

	return &Index{snippets: out, dim: dim}, nil
}

// LoadIndex reads a Source and builds the index from it.
func LoadIndex(ctx context.Context, src Source) (*Index, error) {
	snippets, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewIndex(snippets)
}

func (ix *Index) Len() int { return len(ix.snippets) }

func (ix *Index) Dim() int { return ix.dim }

// Search ranks every snippet by dot product with the unit query vector and returns the top k.
// Equal scores keep corpus order.
func (ix *Index) Search(query []float32, k int) ([]Match, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: query dimension %d, index dimension %d", ErrIndexMismatch, len(query), ix.dim)
	}
	if k <= 0 {
		return nil, nil
	}

	matches := make([]Match, len(ix.snippets))
	for i, s := range ix.snippets {
		matches[i] = Match{Snippet: s, Score: embedding.Dot(query, s.Embedding)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}
