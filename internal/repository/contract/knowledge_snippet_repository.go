package contract

import (
	"context"

	"staystrong-chat-be/pkg/knowledge"
)

type KnowledgeSnippetRepository interface {
	// Load returns every snippet in corpus order. It satisfies knowledge.Source.
	Load(ctx context.Context) ([]knowledge.Snippet, error)
	// ReplaceAll swaps the stored corpus for snippets in a single transaction.
	ReplaceAll(ctx context.Context, snippets []knowledge.Snippet) error
	Count(ctx context.Context) (int64, error)
}
