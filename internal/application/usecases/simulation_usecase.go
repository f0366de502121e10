package usecases

import (
	"context"

	"go.uber.org/zap"

	"github.com/Chandansaha2005/Twindex/internal/domain/entities"
	"github.com/Chandansaha2005/Twindex/internal/domain/services"
	"github.com/Chandansaha2005/Twindex/internal/domain/valueobjects"
)

type SimulationUseCase struct {
	domainService *services.SimulationDomainService
	logger        *zap.SugaredLogger
}

func NewSimulationUseCase(
	domainService *services.SimulationDomainService,
	logger *zap.SugaredLogger,
) *SimulationUseCase {
	return &SimulationUseCase{
		domainService: domainService,
		logger:        logger,
	}
}

type SimulationInput struct {
	Prompt string
	Image  *valueobjects.ImageData // nil unless a multipart image part was sent
}

type SimulationOutput struct {
	Result string
}

func (uc *SimulationUseCase) Execute(ctx context.Context, input SimulationInput) (*SimulationOutput, error) {
	request, err := entities.NewSimulationRequest(input.Prompt, input.Image)
	if err != nil {
		return nil, err
	}

	result, err := uc.domainService.ProcessSimulation(ctx, request)
	if err != nil {
		return nil, err
	}

	switch request.(type) {
	case *entities.PrescriptionAnalysis:
		uc.logger.Info("Prescription analysis completed successfully")
	default:
		uc.logger.Info("Simulation completed successfully")
	}

	return &SimulationOutput{
		Result: result.Text(),
	}, nil
}
