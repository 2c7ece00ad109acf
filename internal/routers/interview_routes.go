package routers

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mockly/interview/internal/handlers"
	"mockly/interview/internal/middleware"
	"mockly/interview/internal/models"
)

// InterviewRoutes mounts the interview API. Every route requires a valid JWT.
func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, jwtSecret string, logger *zap.Logger) {
	router.Route("/api/v1/interview", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret, logger))

		r.With(middleware.ValidateRequest[*models.StartInterviewRequest]()).Post("/start", interviewHandler.StartHandler)
		r.With(middleware.ValidateRequest[*models.SubmitAnswerRequest]()).Post("/submit/{id}", interviewHandler.SubmitHandler)
		r.Get("/results/{interviewId}", interviewHandler.ResultsHandler)
		r.Get("/history", interviewHandler.HistoryHandler)
	})
}
