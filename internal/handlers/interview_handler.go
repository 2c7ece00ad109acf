package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mockly/interview/internal/events"
	"mockly/interview/internal/middleware"
	"mockly/interview/internal/models"
	"mockly/interview/internal/utils"
)

// InterviewService is the engine surface the HTTP layer depends on.
type InterviewService interface {
	StartInterview(ctx context.Context, ownerID, technology, difficulty string) (*models.StartResult, error)
	SubmitAnswer(ctx context.Context, ownerID, sessionID, answer string) (*models.SubmitResult, error)
	GetResults(ctx context.Context, ownerID, sessionID string) (*models.ResultsView, error)
	GetHistory(ctx context.Context, ownerID string) (*models.HistoryResult, error)
}

type InterviewHandler struct {
	service   InterviewService
	publisher events.Publisher
	logger    *zap.Logger
}

func NewInterviewHandler(service InterviewService, publisher events.Publisher, logger *zap.Logger) *InterviewHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterviewHandler{
		service:   service,
		publisher: publisher,
		logger:    logger,
	}
}

func (h *InterviewHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartInterviewRequest](r)
	ownerID := middleware.OwnerID(r)

	result, err := h.service.StartInterview(r.Context(), ownerID, req.Technology, req.Difficulty)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.JSON(w, http.StatusCreated, models.Resp{
		Success: true,
		Message: models.MsgInterviewStarted,
		Data:    result,
	})
}

func (h *InterviewHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SubmitAnswerRequest](r)
	ownerID := middleware.OwnerID(r)
	sessionID := chi.URLParam(r, "id")

	result, err := h.service.SubmitAnswer(r.Context(), ownerID, sessionID, req.Answer)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	message := models.MsgAnswerSubmitted
	if result.Completed {
		message = models.MsgInterviewCompleted
	}
	utils.JSON(w, http.StatusOK, models.Resp{Success: true, Message: message, Data: result})
}

func (h *InterviewHandler) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerID(r)
	sessionID := chi.URLParam(r, "interviewId")

	result, err := h.service.GetResults(r.Context(), ownerID, sessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if !result.Cached {
		h.publishScored(r.Context(), ownerID, result)
	}

	message := models.MsgEvaluated
	if result.Fallback {
		message = models.MsgEvaluatedFallback
	}
	utils.JSON(w, http.StatusOK, models.Resp{Success: true, Message: message, Data: result})
}

func (h *InterviewHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetHistory(r.Context(), middleware.OwnerID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.Resp{Success: true, Message: models.MsgHistoryFetched, Data: result})
}

// failures are logged and never change the response
func (h *InterviewHandler) publishScored(ctx context.Context, ownerID string, result *models.ResultsView) {
	event := models.ScoredEvent{
		InterviewID: result.InterviewID,
		OwnerID:     ownerID,
		Technology:  result.Technology,
		Difficulty:  result.Difficulty,
		Score:       result.OverallScore,
		Evaluator:   result.Evaluator,
		CompletedAt: result.CompletedAt,
	}
	if err := h.publisher.PublishScored(ctx, event); err != nil {
		h.logger.Warn("failed to publish scored event",
			zap.String("session_id", result.InterviewID),
			zap.Error(err))
	}
}

func (h *InterviewHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := errorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("interview request failed",
			zap.String("path", r.URL.Path),
			zap.String("owner_id", middleware.OwnerID(r)),
			zap.Error(err))
	}
	utils.JSON(w, status, resp)
}

func errorResponse(err error) (int, models.ErrorResponse) {
	ie, ok := models.AsInterviewError(err)
	if !ok {
		return http.StatusInternalServerError, models.ErrorResponse{Code: string(models.KindInternal), Message: "Internal server error"}
	}

	status := http.StatusInternalServerError
	switch ie.Kind {
	case models.KindValidation:
		status = http.StatusBadRequest
	case models.KindConflict, models.KindAlreadyCompleted:
		status = http.StatusConflict
	case models.KindNotFound:
		status = http.StatusNotFound
	case models.KindUpstreamGeneration, models.KindUpstreamEvaluation:
		status = http.StatusBadGateway
	}

	message := ie.Message
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	return status, models.ErrorResponse{Code: string(ie.Kind), Message: message}
}
