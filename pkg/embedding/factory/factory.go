package factory

import (
	"fmt"
	"time"

	"staystrong-chat-be/pkg/embedding"
	"staystrong-chat-be/pkg/embedding/jina"
)

type ProviderConfig struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

// NewEmbeddingProvider returns the raw backend; callers wrap it in a CachedProvider.
func NewEmbeddingProvider(cfg ProviderConfig) (embedding.EmbeddingProvider, error) {
	switch cfg.Provider {
	case "ollama", "":
		return embedding.NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini embedding provider requires an API key")
		}
		return embedding.NewGeminiProvider(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "jina":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("jina embedding provider requires an API key")
		}
		return jina.NewJinaProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
