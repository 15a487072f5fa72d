package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staystrong-chat-be/pkg/embedding"
	"staystrong-chat-be/pkg/embedding/jina"
)

func TestNewEmbeddingProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProviderConfig
		wantErr bool
		check   func(t *testing.T, p embedding.EmbeddingProvider)
	}{
		{
			name: "ollama default",
			cfg:  ProviderConfig{},
			check: func(t *testing.T, p embedding.EmbeddingProvider) {
				o, ok := p.(*embedding.OllamaProvider)
				require.True(t, ok)
				assert.Equal(t, "nomic-embed-text", o.Model)
				assert.Equal(t, "http://localhost:11434", o.BaseURL)
			},
		},
		{
			name: "gemini",
			cfg:  ProviderConfig{Provider: "gemini", APIKey: "k"},
			check: func(t *testing.T, p embedding.EmbeddingProvider) {
				g, ok := p.(*embedding.GeminiProvider)
				require.True(t, ok)
				assert.Equal(t, "text-embedding-004", g.Model)
			},
		},
		{
			name: "jina",
			cfg:  ProviderConfig{Provider: "jina", APIKey: "k"},
			check: func(t *testing.T, p embedding.EmbeddingProvider) {
				_, ok := p.(*jina.JinaProvider)
				assert.True(t, ok)
			},
		},
		{name: "gemini without key", cfg: ProviderConfig{Provider: "gemini"}, wantErr: true},
		{name: "jina without key", cfg: ProviderConfig{Provider: "jina"}, wantErr: true},
		{name: "unknown", cfg: ProviderConfig{Provider: "word2vec"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewEmbeddingProvider(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}
