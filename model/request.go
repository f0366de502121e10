package model

// SimulationRequest is the JSON body of POST /simulate.
type SimulationRequest struct {
	Prompt string `json:"prompt"`
}
