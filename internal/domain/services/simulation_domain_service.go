package services

import (
	"context"
	"fmt"

	"github.com/Chandansaha2005/Twindex/internal/domain/entities"
	"github.com/Chandansaha2005/Twindex/internal/domain/repositories"
)

type SimulationDomainService struct {
	aiService repositories.SimulationAIService
}

func NewSimulationDomainService(aiService repositories.SimulationAIService) *SimulationDomainService {
	return &SimulationDomainService{
		aiService: aiService,
	}
}

// ProcessSimulation routes the request to the matching AI operation and wraps its text.
// A failed AI call is a failed request: nothing is retried.
func (s *SimulationDomainService) ProcessSimulation(
	ctx context.Context,
	request entities.SimulationRequest,
) (*entities.SimulationResult, error) {
	if err := s.validateRequest(request); err != nil {
		return nil, err
	}

	var (
		text string
		err  error
	)

	switch req := request.(type) {
	case *entities.StandardSimulation:
		text, err = s.aiService.Simulate(ctx, req.Prompt())
		if err != nil {
			return nil, fmt.Errorf("simulation failed: %w", err)
		}
	case *entities.PrescriptionAnalysis:
		text, err = s.aiService.AnalyzePrescription(ctx, req.Prompt(), req.Image().ToBase64(), req.Image().MimeType())
		if err != nil {
			return nil, fmt.Errorf("prescription analysis failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown simulation request type %T", request)
	}

	return entities.NewSimulationResult(text), nil
}

func (s *SimulationDomainService) validateRequest(request entities.SimulationRequest) error {
	if request == nil {
		return entities.ErrNoPrompt
	}
	return nil
}
