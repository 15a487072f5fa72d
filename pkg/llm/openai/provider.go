package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"staystrong-chat-be/pkg/llm"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// OpenAIProvider talks to the Responses API (or any compatible server set via baseURL).
type OpenAIProvider struct {
	client    openai.Client
	ModelName string
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL, modelName string, timeout time.Duration) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// Failures degrade to a fallback reply; retrying would only add latency to a live chat.
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	return &OpenAIProvider{
		client:    openai.NewClient(opts...),
		ModelName: modelName,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Temperature: 0.3, TopP: 0.9}, opts...)

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	// System turns become instructions; the rest is replayed as input items.
	var instructions []string
	items := make([]responses.ResponseInputItemUnionParam, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			instructions = append(instructions, msg.Content)
		case llm.RoleAssistant, "model":
			items = append(items, responses.ResponseInputItemParamOfMessage(msg.Content, responses.EasyInputMessageRoleAssistant))
		default:
			items = append(items, responses.ResponseInputItemParamOfMessage(msg.Content, responses.EasyInputMessageRoleUser))
		}
	}

	params := responses.ResponseNewParams{
		Model:       model,
		Temperature: openai.Float(options.Temperature),
		TopP:        openai.Float(options.TopP),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: items,
		},
	}
	if len(instructions) > 0 {
		params.Instructions = openai.String(strings.Join(instructions, "\n\n"))
	}
	if options.MaxTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(options.MaxTokens))
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if resp == nil {
		return "", llm.ErrMalformedResponse
	}

	out := strings.TrimSpace(resp.OutputText())
	if out == "" {
		return llm.EmptyReply, nil
	}
	return out, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
