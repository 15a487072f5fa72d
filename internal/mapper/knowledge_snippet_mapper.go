package mapper

import (
	"staystrong-chat-be/internal/model"
	"staystrong-chat-be/pkg/knowledge"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeSnippetMapper struct{}

func NewKnowledgeSnippetMapper() *KnowledgeSnippetMapper {
	return &KnowledgeSnippetMapper{}
}

func (m *KnowledgeSnippetMapper) ToModel(s knowledge.Snippet, position int) *model.KnowledgeSnippet {
	return &model.KnowledgeSnippet{
		Id:             s.ID,
		Position:       position,
		Text:           s.Text,
		Topic:          s.Topic,
		EmbeddingValue: pgvector.NewVector(s.Embedding),
	}
}

func (m *KnowledgeSnippetMapper) ToDomain(r *model.KnowledgeSnippet) knowledge.Snippet {
	return knowledge.Snippet{
		ID:        r.Id,
		Text:      r.Text,
		Topic:     r.Topic,
		Embedding: r.EmbeddingValue.Slice(),
	}
}
