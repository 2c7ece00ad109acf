package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"mockly/interview/internal/middleware"
	"mockly/interview/internal/models"
)

// ============================================================================
// Mocks
// ============================================================================

type mockService struct {
	startResult   *models.StartResult
	submitResult  *models.SubmitResult
	resultsView   *models.ResultsView
	historyResult *models.HistoryResult
	err           error

	gotOwner  string
	gotID     string
	gotAnswer string
}

func (m *mockService) StartInterview(_ context.Context, ownerID, technology, difficulty string) (*models.StartResult, error) {
	m.gotOwner = ownerID
	return m.startResult, m.err
}

func (m *mockService) SubmitAnswer(_ context.Context, ownerID, sessionID, answer string) (*models.SubmitResult, error) {
	m.gotOwner, m.gotID, m.gotAnswer = ownerID, sessionID, answer
	return m.submitResult, m.err
}

func (m *mockService) GetResults(_ context.Context, ownerID, sessionID string) (*models.ResultsView, error) {
	m.gotOwner, m.gotID = ownerID, sessionID
	return m.resultsView, m.err
}

func (m *mockService) GetHistory(_ context.Context, ownerID string) (*models.HistoryResult, error) {
	m.gotOwner = ownerID
	return m.historyResult, m.err
}

type mockPublisher struct {
	events []models.ScoredEvent
	err    error
}

func (m *mockPublisher) PublishScored(_ context.Context, event models.ScoredEvent) error {
	m.events = append(m.events, event)
	return m.err
}

type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

type mockProvider struct{}

func (mockProvider) GenerateContent(context.Context, string, string) (*models.GenerationResponse, error) {
	return &models.GenerationResponse{}, nil
}

func (mockProvider) GetProviderName() string { return "mock" }

type mockPromptManager struct{ templates []string }

func (m *mockPromptManager) GetTemplates() []string {
	if m.templates == nil {
		return []string{"evaluation/complete", "questions/generate"}
	}
	return m.templates
}

// ============================================================================
// Test Helpers
// ============================================================================

// newTestRouter mounts the handler the same way the interview routes do,
// with the owner id injected in place of a verified token.
func newTestRouter(h *InterviewHandler, ownerID string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithOwnerID(req.Context(), ownerID)))
		})
	})
	r.With(middleware.ValidateRequest[*models.StartInterviewRequest]()).Post("/start", h.StartHandler)
	r.With(middleware.ValidateRequest[*models.SubmitAnswerRequest]()).Post("/submit/{id}", h.SubmitHandler)
	r.Get("/results/{interviewId}", h.ResultsHandler)
	r.Get("/history", h.HistoryHandler)
	return r
}

func serve(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}
