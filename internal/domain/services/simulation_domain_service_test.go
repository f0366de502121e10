package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/Chandansaha2005/Twindex/internal/domain/entities"
	"github.com/Chandansaha2005/Twindex/internal/domain/valueobjects"
)

type mockAIService struct {
	result string
	err    error

	simulateCalls int
	analyzeCalls  int

	gotPrompt   string
	gotImage    string
	gotMimeType string
}

func (m *mockAIService) Simulate(ctx context.Context, prompt string) (string, error) {
	m.simulateCalls++
	m.gotPrompt = prompt
	return m.result, m.err
}

func (m *mockAIService) AnalyzePrescription(ctx context.Context, prompt, imageBase64, mimeType string) (string, error) {
	m.analyzeCalls++
	m.gotPrompt = prompt
	m.gotImage = imageBase64
	m.gotMimeType = mimeType
	return m.result, m.err
}

func (m *mockAIService) Close() error {
	return nil
}

func mustRequest(t *testing.T, prompt string, image *valueobjects.ImageData) entities.SimulationRequest {
	t.Helper()
	req, err := entities.NewSimulationRequest(prompt, image)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	return req
}

func TestSimulationDomainService_ProcessSimulation(t *testing.T) {
	imageBytes := []byte("fake-png-bytes")
	image, err := valueobjects.NewImageData(imageBytes, "image/png")
	if err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}

	t.Run("standard simulation", func(t *testing.T) {
		mockAI := &mockAIService{result: "risk drops 28%"}
		service := NewSimulationDomainService(mockAI)

		result, err := service.ProcessSimulation(context.Background(), mustRequest(t, "Simulate 10-year diabetes risk", nil))
		if err != nil {
			t.Fatalf("ProcessSimulation() error = %v", err)
		}
		if result.Text() != "risk drops 28%" {
			t.Errorf("Text() = %q", result.Text())
		}
		if mockAI.simulateCalls != 1 || mockAI.analyzeCalls != 0 {
			t.Errorf("Expected one Simulate call, got simulate=%d analyze=%d", mockAI.simulateCalls, mockAI.analyzeCalls)
		}
		if mockAI.gotPrompt != "Simulate 10-year diabetes risk" {
			t.Errorf("Prompt forwarded as %q", mockAI.gotPrompt)
		}
	})

	t.Run("prescription analysis sends base64 image and mime type", func(t *testing.T) {
		mockAI := &mockAIService{result: "Metformin 500mg twice daily"}
		service := NewSimulationDomainService(mockAI)

		result, err := service.ProcessSimulation(context.Background(), mustRequest(t, "Analyze this prescription", image))
		if err != nil {
			t.Fatalf("ProcessSimulation() error = %v", err)
		}
		if result.Text() != "Metformin 500mg twice daily" {
			t.Errorf("Text() = %q", result.Text())
		}
		if mockAI.analyzeCalls != 1 || mockAI.simulateCalls != 0 {
			t.Errorf("Expected one AnalyzePrescription call, got simulate=%d analyze=%d", mockAI.simulateCalls, mockAI.analyzeCalls)
		}
		if mockAI.gotImage != base64.StdEncoding.EncodeToString(imageBytes) {
			t.Errorf("Image forwarded as %q", mockAI.gotImage)
		}
		if mockAI.gotMimeType != "image/png" {
			t.Errorf("Mime type forwarded as %q", mockAI.gotMimeType)
		}
	})

	t.Run("AI service error", func(t *testing.T) {
		upstream := errors.New("AI service failed")
		mockAI := &mockAIService{err: upstream}
		service := NewSimulationDomainService(mockAI)

		result, err := service.ProcessSimulation(context.Background(), mustRequest(t, "prompt", nil))
		if !errors.Is(err, upstream) {
			t.Errorf("Expected wrapped upstream error, got %v", err)
		}
		if entities.IsValidationError(err) {
			t.Errorf("Upstream failure must not be a validation error")
		}
		if result != nil {
			t.Errorf("Expected nil result on error")
		}
	})

	t.Run("AI service error on prescription analysis", func(t *testing.T) {
		mockAI := &mockAIService{err: errors.New("quota exceeded")}
		service := NewSimulationDomainService(mockAI)

		_, err := service.ProcessSimulation(context.Background(), mustRequest(t, "prompt", image))
		if err == nil || !strings.Contains(err.Error(), "prescription analysis failed") {
			t.Errorf("Expected prescription analysis error, got %v", err)
		}
	})

	t.Run("nil request is a missing prompt", func(t *testing.T) {
		mockAI := &mockAIService{}
		service := NewSimulationDomainService(mockAI)

		_, err := service.ProcessSimulation(context.Background(), nil)
		if !errors.Is(err, entities.ErrNoPrompt) {
			t.Errorf("Expected ErrNoPrompt, got %v", err)
		}
		if mockAI.simulateCalls+mockAI.analyzeCalls != 0 {
			t.Errorf("AI service must not be called for an invalid request")
		}
	})
}
