package repositories

import (
	"context"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/genai"
)

// GoogleClients hands out the SDK clients for the Google-backed providers.
// Each client is built on first request and shared afterwards.
type GoogleClients interface {
	// Gemini Developer API 用クライアント
	GeminiClient(ctx context.Context) (*genai.Client, error)

	// Vertex AI 用クライアント
	VertexClient(ctx context.Context) (*vertexgenai.Client, error)
}
