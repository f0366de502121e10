package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"github.com/Chandansaha2005/Twindex/internal/config"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// lazyClient builds its client on the first get and returns the same one until reset.
// A failed build is not cached.
type lazyClient[T any] struct {
	build func(ctx context.Context) (T, error)
	close func(T) error

	mu     sync.RWMutex
	client T
	ready  bool
}

func (l *lazyClient[T]) get(ctx context.Context) (T, error) {
	l.mu.RLock()
	if l.ready {
		defer l.mu.RUnlock()
		return l.client, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// 別のゴルーチンが先に生成済みの場合
	if l.ready {
		return l.client, nil
	}

	client, err := l.build(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	l.client, l.ready = client, true
	return client, nil
}

func (l *lazyClient[T]) reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.ready {
		return nil
	}

	var err error
	if l.close != nil {
		err = l.close(l.client)
	}

	var zero T
	l.client, l.ready = zero, false
	return err
}

// GoogleClientPool owns the Gemini and Vertex AI clients. Only the client the
// selected provider asks for is ever built.
type GoogleClientPool struct {
	gemini *lazyClient[*genai.Client]
	vertex *lazyClient[*vertexgenai.Client]
}

func NewGoogleClientPool(gemini config.GeminiConfig, vertex config.VertexConfig) *GoogleClientPool {
	return &GoogleClientPool{
		gemini: &lazyClient[*genai.Client]{
			build: func(ctx context.Context) (*genai.Client, error) {
				return newGeminiClient(ctx, gemini)
			},
		},
		vertex: &lazyClient[*vertexgenai.Client]{
			build: func(ctx context.Context) (*vertexgenai.Client, error) {
				return newVertexClient(ctx, vertex)
			},
			close: func(c *vertexgenai.Client) error {
				return c.Close()
			},
		},
	}
}

func (p *GoogleClientPool) GeminiClient(ctx context.Context) (*genai.Client, error) {
	return p.gemini.get(ctx)
}

func (p *GoogleClientPool) VertexClient(ctx context.Context) (*vertexgenai.Client, error) {
	return p.vertex.get(ctx)
}

func (p *GoogleClientPool) Close() error {
	var errs []error
	if err := p.vertex.reset(); err != nil {
		errs = append(errs, fmt.Errorf("vertex AI client: %w", err))
	}
	// genai クライアントは解放すべきリソースを持たない
	if err := p.gemini.reset(); err != nil {
		errs = append(errs, fmt.Errorf("gemini client: %w", err))
	}
	return errors.Join(errs...)
}

func newGeminiClient(ctx context.Context, cfg config.GeminiConfig) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

func newVertexClient(ctx context.Context, cfg config.VertexConfig) (*vertexgenai.Client, error) {
	projectID, err := resolveProjectID(ctx, cfg.ProjectID)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s-aiplatform.googleapis.com:443", cfg.Location)
	client, err := vertexgenai.NewClient(ctx, projectID, cfg.Location, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}
	return client, nil
}

// resolveProjectID returns configured, or the project of the application default credentials.
func resolveProjectID(ctx context.Context, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return "", fmt.Errorf("PROJECT_ID is not set and default credentials are unavailable: %w", err)
	}
	if creds.ProjectID == "" {
		return "", errors.New("PROJECT_ID is not set and default credentials carry no project")
	}
	return creds.ProjectID, nil
}
