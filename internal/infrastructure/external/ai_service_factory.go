package external

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	openaioption "github.com/openai/openai-go/v3/option"

	"github.com/Chandansaha2005/Twindex/internal/config"
	"github.com/Chandansaha2005/Twindex/internal/domain/repositories"
)

var errEmptyResponse = errors.New("empty response from model")

// NewSimulationAIService builds the backend selected by cfg.AIProvider.
// Google clients come from clients so they are created once and closed with the pool.
func NewSimulationAIService(
	ctx context.Context,
	cfg *config.Config,
	clients repositories.GoogleClients,
) (repositories.SimulationAIService, error) {
	switch cfg.AIProvider {
	case config.ProviderGemini:
		client, err := clients.GeminiClient(ctx)
		if err != nil {
			return nil, err
		}
		return NewGeminiAIService(client, cfg.Gemini.Model, cfg.Temperature), nil

	case config.ProviderVertex:
		client, err := clients.VertexClient(ctx)
		if err != nil {
			return nil, err
		}
		return NewVertexAIService(client, cfg.Vertex.Model, cfg.Temperature), nil

	case config.ProviderOpenAI:
		client := newOpenAIClient(cfg.OpenAI)
		return NewOpenAIService(&client, cfg.OpenAI.Model, cfg.Temperature), nil

	case config.ProviderStub:
		return NewStubAIService(), nil

	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}

// SDK の自動リトライは無効にする。失敗した呼び出しはそのままエラーとして返す
func newOpenAIClient(cfg config.OpenAIConfig) openai.Client {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(cfg.APIKey),
		openaioption.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openaioption.WithBaseURL(cfg.BaseURL))
	}
	return openai.NewClient(opts...)
}
