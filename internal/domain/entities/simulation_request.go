package entities

import "github.com/Chandansaha2005/Twindex/internal/domain/valueobjects"

// SimulationRequest is either a StandardSimulation or a PrescriptionAnalysis.
type SimulationRequest interface {
	Prompt() string
	isSimulationRequest()
}

type StandardSimulation struct {
	prompt string
}

func (r *StandardSimulation) Prompt() string {
	return r.prompt
}

func (*StandardSimulation) isSimulationRequest() {}

// 処方箋画像付きのリクエスト
type PrescriptionAnalysis struct {
	prompt string
	image  *valueobjects.ImageData
}

func (r *PrescriptionAnalysis) Prompt() string {
	return r.prompt
}

func (r *PrescriptionAnalysis) Image() *valueobjects.ImageData {
	return r.image
}

func (*PrescriptionAnalysis) isSimulationRequest() {}

// NewSimulationRequest picks the variant from the presence of an image.
// The prompt is carried verbatim; an empty prompt is rejected.
func NewSimulationRequest(prompt string, image *valueobjects.ImageData) (SimulationRequest, error) {
	if prompt == "" {
		return nil, ErrNoPrompt
	}

	if image == nil {
		return &StandardSimulation{prompt: prompt}, nil
	}

	return &PrescriptionAnalysis{
		prompt: prompt,
		image:  image,
	}, nil
}
