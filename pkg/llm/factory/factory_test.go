package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staystrong-chat-be/pkg/llm"
	"staystrong-chat-be/pkg/llm/huggingface"
	"staystrong-chat-be/pkg/llm/ollama"
	"staystrong-chat-be/pkg/llm/openai"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProviderConfig
		wantErr bool
		check   func(t *testing.T, p llm.LLMProvider)
	}{
		{
			name: "ollama defaults",
			cfg:  ProviderConfig{Model: "llama3.2:3b", NumThread: 2},
			check: func(t *testing.T, p llm.LLMProvider) {
				o, ok := p.(*ollama.OllamaProvider)
				require.True(t, ok)
				assert.Equal(t, "http://localhost:11434", o.BaseURL)
				assert.Equal(t, "10m", o.KeepAlive)
				assert.Equal(t, 2, o.NumThread)
			},
		},
		{
			name: "ollama keep alive override",
			cfg:  ProviderConfig{Provider: "ollama", BaseURL: "http://gpu:11434/", KeepAlive: "1h", Timeout: time.Second},
			check: func(t *testing.T, p llm.LLMProvider) {
				o := p.(*ollama.OllamaProvider)
				assert.Equal(t, "http://gpu:11434", o.BaseURL)
				assert.Equal(t, "1h", o.KeepAlive)
				assert.Equal(t, time.Second, o.Client.Timeout)
			},
		},
		{
			name: "openai",
			cfg:  ProviderConfig{Provider: "openai", APIKey: "sk", Model: "gpt-4o-mini"},
			check: func(t *testing.T, p llm.LLMProvider) {
				o, ok := p.(*openai.OpenAIProvider)
				require.True(t, ok)
				assert.Equal(t, "gpt-4o-mini", o.ModelName)
			},
		},
		{
			name: "huggingface",
			cfg:  ProviderConfig{Provider: "huggingface", APIKey: "hf"},
			check: func(t *testing.T, p llm.LLMProvider) {
				_, ok := p.(*huggingface.HuggingFaceProvider)
				assert.True(t, ok)
			},
		},
		{name: "openai without key", cfg: ProviderConfig{Provider: "openai"}, wantErr: true},
		{name: "huggingface without key", cfg: ProviderConfig{Provider: "huggingface"}, wantErr: true},
		{name: "unknown", cfg: ProviderConfig{Provider: "palm"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLLMProvider(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}
