package model

// SimulationResponse is the success body of POST /simulate.
type SimulationResponse struct {
	Result string `json:"result"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
