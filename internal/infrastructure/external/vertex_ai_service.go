package external

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/Chandansaha2005/Twindex/internal/domain/repositories"
)

type VertexAIService struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewVertexAIService(client *genai.Client, model string, temperature float32) repositories.SimulationAIService {
	return &VertexAIService{
		client:      client,
		model:       model,
		temperature: temperature,
	}
}

func (s *VertexAIService) Simulate(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, simulationInstruction, genai.Text(prompt))
}

func (s *VertexAIService) AnalyzePrescription(ctx context.Context, prompt, imageBase64, mimeType string) (string, error) {
	imageBytes, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	return s.generate(ctx, prescriptionInstruction,
		genai.Text(prompt),
		genai.Blob{MIMEType: mimeType, Data: imageBytes},
	)
}

func (s *VertexAIService) generate(ctx context.Context, instruction string, parts ...genai.Part) (string, error) {
	model := s.client.GenerativeModel(s.model)
	model.SetTemperature(s.temperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(instruction)},
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", errEmptyResponse
	}

	return sb.String(), nil
}

// クライアントはプール側で管理するのでここでは閉じない
func (s *VertexAIService) Close() error {
	return nil
}
