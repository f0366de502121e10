package entities

type SimulationResult struct {
	text string
}

func NewSimulationResult(text string) *SimulationResult {
	return &SimulationResult{
		text: text,
	}
}

func (r *SimulationResult) Text() string {
	return r.text
}
