package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Ai        AIConfig
	Content   ContentConfig
	Database  DatabaseConfig
	Telemetry TelemetryConfig
	Safety    SafetyConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	FastMode           bool
	LocalStyle         bool
	RequestTimeout     time.Duration
}

type AIConfig struct {
	LLMProvider   string // "ollama", "openai" or "huggingface"
	LLMModel      string
	OllamaBaseURL string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	HFAPIKey      string
	HFBaseURL     string
	Temperature   float64
	TopP          float64
	MaxTokens     int
	NumThread     int
	KeepAlive     string
	RetrievalK    int

	EmbeddingProvider string // "ollama", "gemini" or "jina"
	EmbeddingModel    string
	EmbeddingBaseURL  string
	GeminiAPIKey      string
	JinaAPIKey        string
	EmbeddingCache    int
	EmbeddingTimeout  time.Duration
}

type ContentConfig struct {
	PackPath          string
	LexiconPath       string
	ContactsPath      string
	LocalPatternsPath string
	IndexVectorsPath  string
	IndexMetadataPath string
	IndexSource       string // "file" or "postgres"
	CorpusDir         string
}

type DatabaseConfig struct {
	Connection string
}

type TelemetryConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

type SafetyConfig struct {
	DevBypassCrisis bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.json"),
			AuditLogFilePath:   getEnv("CRISIS_AUDIT_LOG_PATH", "crisis_audit.log.json"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			FastMode:           getEnvAsBool("FAST_MODE", false),
			LocalStyle:         getEnvAsBool("LOCAL_STYLE", false),
			RequestTimeout:     getEnvAsDuration("REQUEST_TIMEOUT", 60*time.Second),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3.2:3b"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			HFAPIKey:      getEnv("HF_API_KEY", ""),
			HFBaseURL:     getEnv("HF_BASE_URL", ""),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.3),
			TopP:          getEnvAsFloat("LLM_TOP_P", 0.9),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 120),
			NumThread:     getEnvAsInt("OLLAMA_NUM_THREAD", 0),
			KeepAlive:     getEnv("OLLAMA_KEEP_ALIVE", "10m"),
			RetrievalK:    getEnvAsInt("RETRIEVAL_K", 1),

			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", ""),
			EmbeddingBaseURL:  getEnv("EMBEDDING_BASE_URL", ""),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			JinaAPIKey:        getEnv("JINA_API_KEY", ""),
			EmbeddingCache:    getEnvAsInt("EMBEDDING_CACHE_SIZE", 256),
			EmbeddingTimeout:  getEnvAsDuration("EMBEDDING_TIMEOUT", 15*time.Second),
		},
		Content: ContentConfig{
			PackPath:          getEnv("CONTENT_PACK_PATH", ""),
			LexiconPath:       getEnv("LEXICON_PATH", "content/cultural_lexicon.json"),
			ContactsPath:      getEnv("CRISIS_CONTACTS_PATH", "content/crisis_contacts_au.json"),
			LocalPatternsPath: getEnv("LOCAL_CRISIS_PATTERNS_PATH", "content/crisis_patterns.local.yaml"),
			IndexVectorsPath:  getEnv("INDEX_VECTORS_PATH", "data/index/vectors.npy"),
			IndexMetadataPath: getEnv("INDEX_METADATA_PATH", "data/index/meta.json"),
			IndexSource:       getEnv("INDEX_SOURCE", "file"),
			CorpusDir:         getEnv("CORPUS_DIR", "data/corpus"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "staystrong-chat-backend"),
		},
		Safety: SafetyConfig{
			DevBypassCrisis: getEnvAsBool("DEV_BYPASS_CRISIS", false),
		},
	}

	if cfg.IsProduction() && cfg.Safety.DevBypassCrisis {
		log.Println("Warning: DEV_BYPASS_CRISIS ignored in production")
		cfg.Safety.DevBypassCrisis = false
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
