package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mockly/interview/internal/config"
)

func decodeReadinessResponse(t *testing.T, rec *httptest.ResponseRecorder) ReadinessResponse {
	t.Helper()
	var response ReadinessResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response
}

func TestHealthzHandler(t *testing.T) {
	handler := NewHealthHandler(nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	handler.HealthzHandler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "interview" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestReadyzHandler_AllHealthy(t *testing.T) {
	handler := NewHealthHandler(mockPinger{}, mockProvider{}, &mockPromptManager{}, &config.Config{Provider: "gemini"})

	rec := httptest.NewRecorder()
	handler.ReadyzHandler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	response := decodeReadinessResponse(t, rec)
	if response.Status != "ready" {
		t.Fatalf("expected status 'ready', got '%s'", response.Status)
	}
	for _, name := range []string{"store", "provider", "prompt_manager", "configuration"} {
		if check, ok := response.Checks[name]; !ok || check.Status != "ok" {
			t.Errorf("check %s: expected ok, got %+v", name, check)
		}
	}
}

func TestReadyzHandler_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler *HealthHandler
		failed  string
	}{
		{
			name:    "store unreachable",
			handler: NewHealthHandler(mockPinger{err: errors.New("down")}, mockProvider{}, &mockPromptManager{}, &config.Config{}),
			failed:  "store",
		},
		{
			name:    "missing store",
			handler: NewHealthHandler(nil, mockProvider{}, &mockPromptManager{}, &config.Config{}),
			failed:  "store",
		},
		{
			name:    "missing provider",
			handler: NewHealthHandler(mockPinger{}, nil, &mockPromptManager{}, &config.Config{}),
			failed:  "provider",
		},
		{
			name:    "no templates",
			handler: NewHealthHandler(mockPinger{}, mockProvider{}, &mockPromptManager{templates: []string{}}, &config.Config{}),
			failed:  "prompt_manager",
		},
		{
			name:    "missing config",
			handler: NewHealthHandler(mockPinger{}, mockProvider{}, &mockPromptManager{}, nil),
			failed:  "configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler.ReadyzHandler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d", rec.Code)
			}
			response := decodeReadinessResponse(t, rec)
			if response.Status != "not_ready" {
				t.Fatalf("expected not_ready, got %s", response.Status)
			}
			if response.Checks[tt.failed].Status != "failed" {
				t.Fatalf("expected %s check to fail, got %+v", tt.failed, response.Checks)
			}
		})
	}
}
