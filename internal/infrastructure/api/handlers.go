package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Chandansaha2005/Twindex/internal/application/services"
	"github.com/Chandansaha2005/Twindex/internal/application/usecases"
	"github.com/Chandansaha2005/Twindex/internal/domain/entities"
	"github.com/Chandansaha2005/Twindex/model"
)

const (
	internalErrorDetail = "Error processing simulation request"
	tooLargeDetail      = "Request body too large"
)

type SimulationHandler struct {
	simulationUseCase *usecases.SimulationUseCase
	requestService    *services.RequestService
	maxBodyBytes      int64
	logger            *zap.SugaredLogger
}

func NewSimulationHandler(
	simulationUseCase *usecases.SimulationUseCase,
	requestService *services.RequestService,
	maxBodyBytes int64,
	logger *zap.SugaredLogger,
) *SimulationHandler {
	return &SimulationHandler{
		simulationUseCase: simulationUseCase,
		requestService:    requestService,
		maxBodyBytes:      maxBodyBytes,
		logger:            logger,
	}
}

func (h *SimulationHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	input, err := h.requestService.ParseFromRequest(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	output, err := h.simulationUseCase.Execute(r.Context(), *input)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, model.SimulationResponse{Result: output.Result})
}

func (h *SimulationHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, model.HealthResponse{Status: "healthy"})
}

func (h *SimulationHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.sendError(w, "Not Found", http.StatusNotFound)
}

func (h *SimulationHandler) HandleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.sendError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handleError maps validation errors to 400 with their message. Validation errors
// reach here unwrapped, so the message is the caller-facing detail. Everything else
// is logged in full and answered with a generic 500.
func (h *SimulationHandler) handleError(w http.ResponseWriter, err error) {
	if entities.IsValidationError(err) {
		h.logger.Errorw("Validation error", "error", err)
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.logger.Errorw("Request body too large", "limit", maxBytesErr.Limit)
		h.sendError(w, tooLargeDetail, http.StatusRequestEntityTooLarge)
		return
	}

	h.logger.Errorw("Error processing simulation", "error", err)
	h.sendError(w, internalErrorDetail, http.StatusInternalServerError)
}

func (h *SimulationHandler) sendJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Errorw("Failed to encode JSON response", "error", err)
	}
}

func (h *SimulationHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, statusCode, model.ErrorResponse{Detail: message})
}
