package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "DEBUG_MODE", "AI_PROVIDER", "TEMPERATURE",
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL",
		"PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "LOCATION", "VERTEX_MODEL",
		"OPENAI_API_KEY", "OPENAI_MODEL",
		"MAX_UPLOAD_BYTES", "CORS_ALLOWED_ORIGINS",
		"READ_HEADER_TIMEOUT", "READ_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "stub")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Addr() != ":8000" {
		t.Errorf("Addr() = %q, want :8000", cfg.Addr())
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q", cfg.Gemini.Model)
	}
	if cfg.Server.MaxUploadBytes != 10<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.Server.MaxUploadBytes)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 1 || cfg.Server.CORSAllowedOrigins[0] != "*" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.Server.CORSAllowedOrigins)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", " OpenAI ")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("PORT", "9090")
	t.Setenv("WRITE_TIMEOUT", "45s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000;https://twindex.example")
	t.Setenv("TEMPERATURE", "0.9")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AIProvider != ProviderOpenAI {
		t.Errorf("AIProvider = %q", cfg.AIProvider)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("OpenAI.Model = %q", cfg.OpenAI.Model)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Server.WriteTimeout != 45*time.Second {
		t.Errorf("WriteTimeout = %v", cfg.Server.WriteTimeout)
	}
	if got := strings.Join(cfg.Server.CORSAllowedOrigins, ","); got != "http://localhost:3000,https://twindex.example" {
		t.Errorf("CORSAllowedOrigins = %q", got)
	}
	if cfg.Temperature != 0.9 {
		t.Errorf("Temperature = %v", cfg.Temperature)
	}
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("PORT", "9090")

	cfg, err := Load([]string{"-ai-provider", "stub", "-port", "7000"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AIProvider != ProviderStub || cfg.Port != "7000" {
		t.Errorf("flags not applied: provider=%q port=%q", cfg.AIProvider, cfg.Port)
	}
}

func TestLoad_GoogleFallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "twindex-dev")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gemini.APIKey != "google-key" {
		t.Errorf("Gemini.APIKey = %q", cfg.Gemini.APIKey)
	}
	if cfg.Vertex.ProjectID != "twindex-dev" {
		t.Errorf("Vertex.ProjectID = %q", cfg.Vertex.ProjectID)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"stub needs nothing", func(c *Config) { c.AIProvider = ProviderStub }, ""},
		{"gemini needs key", func(c *Config) { c.AIProvider = ProviderGemini }, "GEMINI_API_KEY"},
		{"gemini with key", func(c *Config) { c.AIProvider = ProviderGemini; c.Gemini.APIKey = "k" }, ""},
		{"openai needs key", func(c *Config) { c.AIProvider = ProviderOpenAI }, "OPENAI_API_KEY"},
		{"vertex needs location", func(c *Config) { c.AIProvider = ProviderVertex; c.Vertex.Location = "" }, "LOCATION"},
		{"vertex without project is allowed", func(c *Config) { c.AIProvider = ProviderVertex }, ""},
		{"unknown provider", func(c *Config) { c.AIProvider = "bard" }, "unknown AI_PROVIDER"},
		{"zero upload limit", func(c *Config) { c.AIProvider = ProviderStub; c.Server.MaxUploadBytes = 0 }, "MAX_UPLOAD_BYTES"},
		{"empty port", func(c *Config) { c.AIProvider = ProviderStub; c.Port = "" }, "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
