package bootstrap

import (
	"context"
	"fmt"
	"time"

	"staystrong-chat-be/internal/config"
	"staystrong-chat-be/internal/controller"
	"staystrong-chat-be/internal/pkg/logger"
	"staystrong-chat-be/internal/repository/implementation"
	"staystrong-chat-be/internal/repository/memory"
	"staystrong-chat-be/internal/service"
	"staystrong-chat-be/pkg/content"
	"staystrong-chat-be/pkg/culture"
	"staystrong-chat-be/pkg/database"
	"staystrong-chat-be/pkg/dialogue"
	"staystrong-chat-be/pkg/embedding"
	embeddingFactory "staystrong-chat-be/pkg/embedding/factory"
	"staystrong-chat-be/pkg/flow"
	"staystrong-chat-be/pkg/knowledge"
	llmFactory "staystrong-chat-be/pkg/llm/factory"
	"staystrong-chat-be/pkg/safety"
	"staystrong-chat-be/pkg/style"
)

const modelStatusTTL = 30 * time.Second

type Container struct {
	// Controllers
	ChatController controller.IChatController

	Logger      logger.ILogger
	AuditLogger logger.ILogger
}

// NewContainer loads every read-only resource once and wires the request path. Missing
// content the service cannot run without (lexicon, knowledge index, a configured content
// pack) is returned as an error; crisis contacts always fall back to built-in numbers.
func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Logging
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Content
	pack, err := content.LoadPack(cfg.Content.PackPath)
	if err != nil {
		return nil, fmt.Errorf("content pack: %w", err)
	}

	lexicon, err := culture.LoadLexicon(cfg.Content.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", cfg.Content.LexiconPath, err)
	}

	contacts, fromFile, err := safety.LoadContacts(cfg.Content.ContactsPath)
	contactsSource := "file"
	if !fromFile {
		contactsSource = "fallback"
		details := map[string]interface{}{"path": cfg.Content.ContactsPath}
		if err != nil {
			details["error"] = err.Error()
		}
		sysLogger.Warn("BOOTSTRAP", "Crisis contacts unavailable, using built-in numbers", details)
	}

	localPatterns, err := safety.LoadLocalPatterns(cfg.Content.LocalPatternsPath)
	if err != nil {
		return nil, fmt.Errorf("local crisis patterns: %w", err)
	}

	// 3. Safety
	if cfg.Safety.DevBypassCrisis {
		sysLogger.Warn("BOOTSTRAP", "DEV_BYPASS_CRISIS is on: crisis detection disabled", nil)
	}
	classifier, err := safety.NewClassifier(localPatterns,
		safety.WithAudit(logger.NewCrisisAuditLogger(auditLogger)),
		safety.WithBypass(cfg.Safety.DevBypassCrisis),
	)
	if err != nil {
		return nil, fmt.Errorf("crisis classifier: %w", err)
	}
	protocol := safety.NewProtocol(classifier, contacts)

	// 4. Backends
	llmProvider, err := llmFactory.NewLLMProvider(llmProviderConfig(cfg.Ai, cfg.App.RequestTimeout))
	if err != nil {
		return nil, err
	}

	rawEmbedder, err := embeddingFactory.NewEmbeddingProvider(embeddingFactory.ProviderConfig{
		Provider: cfg.Ai.EmbeddingProvider,
		Model:    cfg.Ai.EmbeddingModel,
		BaseURL:  embeddingBaseURL(cfg.Ai),
		APIKey:   embeddingAPIKey(cfg.Ai),
		Timeout:  cfg.Ai.EmbeddingTimeout,
	})
	if err != nil {
		return nil, err
	}
	embedder, err := embedding.NewCachedProvider(rawEmbedder, cfg.Ai.EmbeddingCache)
	if err != nil {
		return nil, err
	}

	// 5. Knowledge index
	source, err := indexSource(cfg)
	if err != nil {
		return nil, err
	}
	index, err := knowledge.LoadIndex(context.Background(), source)
	if err != nil {
		return nil, fmt.Errorf("knowledge index (%s): %w", cfg.Content.IndexSource, err)
	}

	// 6. Orchestrator
	orchestrator, err := dialogue.NewOrchestrator(dialogue.Dependencies{
		Protocol:   protocol,
		Engine:     flow.NewEngine(pack),
		Normalizer: culture.NewNormalizer(lexicon),
		Retriever:  knowledge.NewRetriever(index, embedder),
		Styler:     style.NewStyler(cfg.App.LocalStyle),
		LLM:        llmProvider,
		Strings:    pack,
		Logger:     sysLogger,
	}, dialogue.Options{
		FastMode:    cfg.App.FastMode,
		K:           cfg.Ai.RetrievalK,
		Temperature: cfg.Ai.Temperature,
		TopP:        cfg.Ai.TopP,
		MaxTokens:   cfg.Ai.MaxTokens,
		Timeout:     cfg.App.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}

	// 7. Services & controllers
	chatService := service.NewChatService(
		orchestrator,
		llmProvider,
		memory.NewModelStatusRepository(modelStatusTTL),
		service.RuntimeInfo{
			IndexSnippets:  index.Len(),
			LexiconEntries: len(lexicon),
			ContactsSource: contactsSource,
			Provider:       cfg.Ai.LLMProvider,
			Model:          cfg.Ai.LLMModel,
		},
		sysLogger,
	)

	sysLogger.Info("BOOTSTRAP", "Container ready", map[string]interface{}{
		"index_snippets":  index.Len(),
		"index_dim":       index.Dim(),
		"lexicon_entries": len(lexicon),
		"contacts":        contactsSource,
		"llm_provider":    cfg.Ai.LLMProvider,
		"embedding":       cfg.Ai.EmbeddingProvider,
	})

	return &Container{
		ChatController: controller.NewChatController(chatService),
		Logger:         sysLogger,
		AuditLogger:    auditLogger,
	}, nil
}

// Sync flushes both loggers.
func (c *Container) Sync() {
	_ = c.Logger.Sync()
	_ = c.AuditLogger.Sync()
}

func llmProviderConfig(ai config.AIConfig, timeout time.Duration) llmFactory.ProviderConfig {
	pc := llmFactory.ProviderConfig{
		Provider:  ai.LLMProvider,
		Model:     ai.LLMModel,
		NumThread: ai.NumThread,
		KeepAlive: ai.KeepAlive,
		Timeout:   timeout,
	}
	switch ai.LLMProvider {
	case "openai":
		pc.APIKey, pc.BaseURL = ai.OpenAIAPIKey, ai.OpenAIBaseURL
	case "huggingface":
		pc.APIKey, pc.BaseURL = ai.HFAPIKey, ai.HFBaseURL
	default:
		pc.BaseURL = ai.OllamaBaseURL
	}
	return pc
}

func embeddingBaseURL(ai config.AIConfig) string {
	if ai.EmbeddingBaseURL != "" {
		return ai.EmbeddingBaseURL
	}
	if ai.EmbeddingProvider == "ollama" || ai.EmbeddingProvider == "" {
		return ai.OllamaBaseURL
	}
	return ""
}

func embeddingAPIKey(ai config.AIConfig) string {
	switch ai.EmbeddingProvider {
	case "gemini":
		return ai.GeminiAPIKey
	case "jina":
		return ai.JinaAPIKey
	default:
		return ""
	}
}

func indexSource(cfg *config.Config) (knowledge.Source, error) {
	switch cfg.Content.IndexSource {
	case "file", "":
		return knowledge.NewFileSource(cfg.Content.IndexVectorsPath, cfg.Content.IndexMetadataPath), nil
	case "postgres":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("knowledge database: %w", err)
		}
		return implementation.NewKnowledgeSnippetRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported INDEX_SOURCE: %s", cfg.Content.IndexSource)
	}
}
