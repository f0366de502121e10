package external

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"

	"github.com/Chandansaha2005/Twindex/internal/domain/repositories"
)

// OpenAIService sends prompts through the Responses API. Images travel as data URLs,
// so the base64 payload is used as-is.
type OpenAIService struct {
	client      *openai.Client
	model       string
	temperature float64
}

func NewOpenAIService(client *openai.Client, model string, temperature float32) repositories.SimulationAIService {
	return &OpenAIService{
		client:      client,
		model:       model,
		temperature: float64(temperature),
	}
}

func (s *OpenAIService) Simulate(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, simulationInstruction, responses.ResponseNewParamsInputUnion{
		OfString: openai.String(prompt),
	})
}

func (s *OpenAIService) AnalyzePrescription(ctx context.Context, prompt, imageBase64, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, imageBase64)

	return s.generate(ctx, prescriptionInstruction, responses.ResponseNewParamsInputUnion{
		OfInputItemList: responses.ResponseInputParam{
			responses.ResponseInputItemParamOfMessage(
				responses.ResponseInputMessageContentListParam{
					{
						OfInputText: &responses.ResponseInputTextParam{
							Text: prompt,
						},
					},
					{
						OfInputImage: &responses.ResponseInputImageParam{
							Detail:   responses.ResponseInputImageDetailHigh,
							ImageURL: openai.String(dataURL),
						},
					},
				},
				responses.EasyInputMessageRoleUser,
			),
		},
	})
}

func (s *OpenAIService) generate(ctx context.Context, instruction string, input responses.ResponseNewParamsInputUnion) (string, error) {
	resp, err := s.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:        s.model,
		Instructions: openai.String(instruction),
		Temperature:  openai.Float(s.temperature),
		Input:        input,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create response: %w", err)
	}

	text := resp.OutputText()
	if text == "" {
		return "", errEmptyResponse
	}

	return text, nil
}

func (s *OpenAIService) Close() error {
	return nil
}
