package factory

import (
	"fmt"
	"time"

	"staystrong-chat-be/pkg/llm"
	"staystrong-chat-be/pkg/llm/huggingface"
	"staystrong-chat-be/pkg/llm/ollama"
	"staystrong-chat-be/pkg/llm/openai"
)

// ProviderConfig carries what every backend might need; each provider reads its own fields.
type ProviderConfig struct {
	Provider  string
	Model     string
	BaseURL   string
	APIKey    string
	NumThread int
	KeepAlive string
	Timeout   time.Duration
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "ollama", "":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		p := ollama.NewOllamaProvider(baseURL, cfg.Model, cfg.Timeout)
		p.NumThread = cfg.NumThread
		if cfg.KeepAlive != "" {
			p.KeepAlive = cfg.KeepAlive
		}
		return p, nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "huggingface":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("huggingface provider requires an API key")
		}
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
