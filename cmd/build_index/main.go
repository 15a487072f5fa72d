package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"staystrong-chat-be/internal/config"
	"staystrong-chat-be/internal/model"
	"staystrong-chat-be/internal/repository/implementation"
	"staystrong-chat-be/pkg/database"
	"staystrong-chat-be/pkg/embedding"
	embeddingFactory "staystrong-chat-be/pkg/embedding/factory"
	"staystrong-chat-be/pkg/knowledge"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type buildFlags struct {
	corpusDir string
	target    string
	vectors   string
	metadata  string
	chunkSize int
	overlap   int
	timeout   time.Duration
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	f := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build_index",
		Short: "Embed the approved-context corpus and write the knowledge index",
		Long: `Reads every *.jsonl file ({"id","text","topic"} per line) in the corpus directory,
embeds each text with the configured embedding provider and writes either a .npy vector blob
plus metadata JSON, or the knowledge_snippets table in Postgres.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, f)
		},
	}

	cmd.Flags().StringVar(&f.corpusDir, "corpus", cfg.Content.CorpusDir, "directory of *.jsonl snippet files")
	cmd.Flags().StringVar(&f.target, "target", cfg.Content.IndexSource, "where to write the index: file or postgres")
	cmd.Flags().StringVar(&f.vectors, "vectors", cfg.Content.IndexVectorsPath, "output .npy path (target=file)")
	cmd.Flags().StringVar(&f.metadata, "metadata", cfg.Content.IndexMetadataPath, "output metadata JSON path (target=file)")
	cmd.Flags().IntVar(&f.chunkSize, "chunk-size", 800, "split snippets longer than this many characters (0 disables)")
	cmd.Flags().IntVar(&f.overlap, "chunk-overlap", 80, "characters shared between consecutive chunks")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 10*time.Minute, "overall timeout")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, f *buildFlags) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// 1. Corpus
	items, err := knowledge.LoadCorpus(f.corpusDir)
	if err != nil {
		return err
	}
	color.Cyan("📚 Loaded %d snippets from %s", len(items), f.corpusDir)

	if chunked := knowledge.ChunkSnippets(items, f.chunkSize, f.overlap); len(chunked) != len(items) {
		color.Yellow("   split long passages: %d -> %d snippets", len(items), len(chunked))
		items = chunked
	}

	// 2. Embed
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	start := time.Now()
	snippets, err := knowledge.EmbedCorpus(ctx, items, embedder, func(done, total int) {
		fmt.Printf("\r   embedding %d/%d", done, total)
	})
	fmt.Println()
	if err != nil {
		return err
	}
	color.Green("✓ Embedded %d snippets (dim %d) in %s", len(snippets), len(snippets[0].Embedding), time.Since(start).Round(time.Millisecond))

	// 3. Write
	switch f.target {
	case "file", "":
		if err := knowledge.NewFileSource(f.vectors, f.metadata).Save(snippets); err != nil {
			return err
		}
		color.Green("✓ Wrote %s and %s", f.vectors, f.metadata)
	case "postgres":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
		if err != nil {
			return err
		}
		if err := database.Migrate(db, &model.KnowledgeSnippet{}); err != nil {
			return err
		}
		if err := implementation.NewKnowledgeSnippetRepository(db).ReplaceAll(ctx, snippets); err != nil {
			return err
		}
		color.Green("✓ Stored %d snippets in knowledge_snippets", len(snippets))
	default:
		return fmt.Errorf("unknown target %q (want file or postgres)", f.target)
	}
	return nil
}

func newEmbedder(cfg *config.Config) (embedding.EmbeddingProvider, error) {
	baseURL := cfg.Ai.EmbeddingBaseURL
	if baseURL == "" && (cfg.Ai.EmbeddingProvider == "ollama" || cfg.Ai.EmbeddingProvider == "") {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	apiKey := cfg.Ai.GeminiAPIKey
	if cfg.Ai.EmbeddingProvider == "jina" {
		apiKey = cfg.Ai.JinaAPIKey
	}
	return embeddingFactory.NewEmbeddingProvider(embeddingFactory.ProviderConfig{
		Provider: cfg.Ai.EmbeddingProvider,
		Model:    cfg.Ai.EmbeddingModel,
		BaseURL:  baseURL,
		APIKey:   apiKey,
		Timeout:  cfg.Ai.EmbeddingTimeout,
	})
}
