package external

import (
	"context"
	"fmt"

	"github.com/Chandansaha2005/Twindex/internal/domain/repositories"
)

// StubAIService answers without calling any model. Used for local development.
type StubAIService struct{}

func NewStubAIService() repositories.SimulationAIService {
	return &StubAIService{}
}

func (s *StubAIService) Simulate(_ context.Context, prompt string) (string, error) {
	return fmt.Sprintf("Simulation request received (%d characters). No model is configured.", len([]rune(prompt))), nil
}

func (s *StubAIService) AnalyzePrescription(_ context.Context, prompt, imageBase64, mimeType string) (string, error) {
	return fmt.Sprintf("Prescription analysis request received (%s image, %d base64 characters). No model is configured.", mimeType, len(imageBase64)), nil
}

func (s *StubAIService) Close() error {
	return nil
}
