package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderVertex = "vertex"
	ProviderOpenAI = "openai"
	ProviderStub   = "stub"
)

type Config struct {
	Host      string `env:"HOST"`       // 空なら全インターフェース
	Port      string `env:"PORT"`       // フロントエンドは 8000 を想定
	DebugMode bool   `env:"DEBUG_MODE"` // zap の development ロガーを使う

	AIProvider  string  `env:"AI_PROVIDER"` // gemini|vertex|openai|stub
	Temperature float32 `env:"TEMPERATURE"`

	Gemini GeminiConfig
	Vertex VertexConfig
	OpenAI OpenAIConfig
	Server ServerConfig
}

// GeminiConfig Gemini Developer API の設定
type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL"`
}

// VertexConfig Vertex AI の設定。ProjectID が空ならアプリケーションデフォルト認証情報から解決する
type VertexConfig struct {
	ProjectID string `env:"PROJECT_ID"`
	Location  string `env:"LOCATION"`
	Model     string `env:"VERTEX_MODEL"`
}

// OpenAIConfig OpenAI Responses API の設定。BaseURL は互換プロキシを使う場合のみ指定する
type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	Model   string `env:"OPENAI_MODEL"`
	BaseURL string `env:"OPENAI_BASE_URL"`
}

// ServerConfig HTTP サーバーの設定
type ServerConfig struct {
	MaxUploadBytes     int64         `env:"MAX_UPLOAD_BYTES"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:";"`
	ReadHeaderTimeout  time.Duration `env:"READ_HEADER_TIMEOUT"`
	ReadTimeout        time.Duration `env:"READ_TIMEOUT"`
	WriteTimeout       time.Duration `env:"WRITE_TIMEOUT"` // モデル応答を待つので長め
	IdleTimeout        time.Duration `env:"IDLE_TIMEOUT"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Defaults デフォルト値の設定を返す。.env、環境変数、CLIフラグの順に上書きされる。
func Defaults() *Config {
	return &Config{
		Port:        "8000",
		AIProvider:  ProviderGemini,
		Temperature: 0.4,
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Vertex: VertexConfig{
			Location: "us-central1",
			Model:    "gemini-2.5-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
		Server: ServerConfig{
			MaxUploadBytes:     10 << 20, // 10MB
			CORSAllowedOrigins: []string{"*"},
			ReadHeaderTimeout:  5 * time.Second,
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       120 * time.Second,
			IdleTimeout:        60 * time.Second,
			ShutdownTimeout:    10 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, .env, the environment and args, in that order.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	applyFallbacks(cfg)

	fs := flag.NewFlagSet("twindex", flag.ContinueOnError)
	fs.StringVar(&cfg.Host, "host", cfg.Host, "listen host")
	fs.StringVar(&cfg.Port, "port", cfg.Port, "listen port")
	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "development logging")
	fs.StringVar(&cfg.AIProvider, "ai-provider", cfg.AIProvider, "AI backend: gemini|vertex|openai|stub")
	fs.StringVar(&cfg.Gemini.Model, "gemini-model", cfg.Gemini.Model, "Gemini model name")
	fs.StringVar(&cfg.Vertex.ProjectID, "project-id", cfg.Vertex.ProjectID, "Google Cloud project for Vertex AI")
	fs.StringVar(&cfg.Vertex.Location, "location", cfg.Vertex.Location, "Vertex AI region")
	fs.StringVar(&cfg.Vertex.Model, "vertex-model", cfg.Vertex.Model, "Vertex AI model name")
	fs.StringVar(&cfg.OpenAI.Model, "openai-model", cfg.OpenAI.Model, "OpenAI model name")
	fs.Int64Var(&cfg.Server.MaxUploadBytes, "max-upload-bytes", cfg.Server.MaxUploadBytes, "maximum request body size")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyFallbacks(cfg *Config) {
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if cfg.Vertex.ProjectID == "" {
		cfg.Vertex.ProjectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
}

// Validate checks only the settings the selected provider needs.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	switch c.AIProvider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", c.AIProvider)
		}
	case ProviderVertex:
		if c.Vertex.Location == "" {
			return fmt.Errorf("LOCATION is required for provider %q", c.AIProvider)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", c.AIProvider)
		}
	case ProviderStub:
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q (want gemini, vertex, openai or stub)", c.AIProvider)
	}

	return nil
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
