package embedding

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 256

// CachedProvider memoizes vectors by exact input text. The LRU is safe for concurrent use
// and bounded, so it can be shared by every request in the process.
type CachedProvider struct {
	next  EmbeddingProvider
	cache *lru.Cache[string, []float32]
}

func NewCachedProvider(next EmbeddingProvider, size int) (*CachedProvider, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, err
	}
	return &CachedProvider{next: next, cache: c}, nil
}

func (p *CachedProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	key := taskType + "\x00" + text
	if v, ok := p.cache.Get(key); ok {
		return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: v}}, nil
	}

	res, err := p.next.Generate(ctx, text, taskType)
	if err != nil {
		// Failures are never cached; the next turn gets a fresh attempt.
		return nil, err
	}

	p.cache.Add(key, res.Embedding.Values)
	return res, nil
}

// Len reports how many vectors are cached.
func (p *CachedProvider) Len() int {
	return p.cache.Len()
}
