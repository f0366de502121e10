package external

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/Chandansaha2005/Twindex/internal/domain/repositories"

	"google.golang.org/genai"
)

type GeminiAIService struct {
	genAIClient *genai.Client
	model       string
	temperature float32
}

func NewGeminiAIService(genAIClient *genai.Client, model string, temperature float32) repositories.SimulationAIService {
	return &GeminiAIService{
		genAIClient: genAIClient,
		model:       model,
		temperature: temperature,
	}
}

func (s *GeminiAIService) Simulate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	return s.generate(ctx, simulationInstruction, contents)
}

func (s *GeminiAIService) AnalyzePrescription(ctx context.Context, prompt, imageBase64, mimeType string) (string, error) {
	imageBytes, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(imageBytes, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	return s.generate(ctx, prescriptionInstruction, contents)
}

func (s *GeminiAIService) generate(ctx context.Context, instruction string, contents []*genai.Content) (string, error) {
	resp, err := s.genAIClient.Models.GenerateContent(ctx,
		s.model,
		contents,
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
			Temperature:       genai.Ptr(s.temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errEmptyResponse
	}

	return text, nil
}

// GenAI Clientはリソースクリーンアップ不要
func (s *GeminiAIService) Close() error {
	return nil
}
