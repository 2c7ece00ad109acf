package interview

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"mockly/interview/internal/metrics"
	"mockly/interview/internal/models"
	"mockly/interview/internal/scoring"
	"mockly/interview/internal/store"
	"mockly/interview/internal/utils"
)

// QuestionGenerator produces the ordered questions for a new interview.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, technology, difficulty string) ([]string, error)
}

// Evaluator is the primary scorer. Errors trigger the heuristic fallback.
type Evaluator interface {
	Evaluate(ctx context.Context, questions []models.QuestionAnswer, technology, difficulty string) (models.ScoreResult, error)
}

// Engine runs the interview lifecycle. It holds no session state of its own;
// every call reads from and writes to the store.
type Engine struct {
	store     store.SessionStore
	generator QuestionGenerator
	evaluator Evaluator
	fallback  *scoring.HeuristicEvaluator
	logger    *zap.Logger
	now       func() time.Time

	// called once per score that was actually persisted
	recordEvaluation func(evaluator string, elapsed time.Duration)
}

// NewEngine wires the engine. A nil evaluator means every interview is
// scored by the heuristic.
func NewEngine(s store.SessionStore, generator QuestionGenerator, evaluator Evaluator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:     s,
		generator: generator,
		evaluator: evaluator,
		fallback:  scoring.NewHeuristicEvaluator(),
		logger:    logger,
		now:       time.Now,

		recordEvaluation: metrics.EvaluationRecorded,
	}
}

// StartInterview generates questions and opens the owner's only active session.
func (e *Engine) StartInterview(ctx context.Context, ownerID, technology, difficulty string) (*models.StartResult, error) {
	technology = utils.NormalizeTechnology(technology)
	difficulty = utils.NormalizeDifficulty(difficulty)
	if ownerID == "" {
		return nil, models.NewValidationError(models.MsgOwnerRequired)
	}
	if technology == "" || difficulty == "" {
		return nil, models.NewValidationError(models.MsgTechnologyRequired)
	}

	_, err := e.store.FindOne(ctx, store.Filter{OwnerID: ownerID, Status: models.StatusActive})
	switch {
	case err == nil:
		return nil, models.NewConflictError(models.MsgActiveExists)
	case !errors.Is(err, store.ErrNotFound):
		return nil, models.NewInternalError("failed to check for an active interview", err)
	}

	questions, err := e.generator.GenerateQuestions(ctx, technology, difficulty)
	if err != nil {
		if _, ok := models.AsInterviewError(err); ok {
			return nil, err
		}
		return nil, models.NewUpstreamGenerationError(models.MsgQuestionsUnavailable, err)
	}
	if len(questions) < models.QuestionsPerInterview {
		return nil, models.NewUpstreamGenerationError(models.MsgQuestionsUnavailable, nil)
	}

	session := &models.InterviewSession{
		OwnerID:    ownerID,
		Technology: technology,
		Difficulty: difficulty,
		Questions:  make([]models.QuestionAnswer, models.QuestionsPerInterview),
		Status:     models.StatusActive,
	}
	for i := range session.Questions {
		session.Questions[i].Question = questions[i]
	}
	if err := e.store.Create(ctx, session); err != nil {
		return nil, models.NewInternalError("failed to create interview", err)
	}

	metrics.InterviewStarted()
	e.logger.Info("interview started",
		zap.String("session_id", session.ID),
		zap.String("owner_id", ownerID),
		zap.String("technology", technology),
		zap.String("difficulty", difficulty))

	return &models.StartResult{
		InterviewID:    session.ID,
		Question:       session.Questions[0].Question,
		QuestionNumber: 1,
		TotalQuestions: session.TotalQuestions(),
		Technology:     technology,
		Difficulty:     difficulty,
	}, nil
}

// SubmitAnswer records the answer to the current question and advances the session.
func (e *Engine) SubmitAnswer(ctx context.Context, ownerID, sessionID, answer string) (*models.SubmitResult, error) {
	if isBlank(answer) {
		return nil, models.NewValidationError(models.MsgAnswerRequired)
	}

	session, err := e.store.FindOne(ctx, store.Filter{ID: sessionID, OwnerID: ownerID, Status: models.StatusActive})
	if err != nil {
		return nil, notFoundOrInternal(err, models.MsgActiveNotFound)
	}

	answeredIndex := session.CurrentIndex
	completed, err := RecordAnswer(session, answer, e.now())
	if err != nil {
		return nil, err
	}

	// first write wins when the same question is answered twice concurrently
	expect := store.Filter{Status: models.StatusActive, CurrentIndex: &answeredIndex}
	if err := e.store.SaveIf(ctx, session, expect); err != nil {
		if errors.Is(err, store.ErrStale) {
			return nil, models.NewConflictError("This question was already answered")
		}
		return nil, models.NewInternalError("failed to save answer", err)
	}

	metrics.AnswerSubmitted()
	if completed {
		metrics.InterviewCompleted()
		e.logger.Info("interview completed",
			zap.String("session_id", session.ID),
			zap.String("owner_id", ownerID))
		return &models.SubmitResult{
			Completed:      true,
			InterviewID:    session.ID,
			TotalQuestions: session.TotalQuestions(),
		}, nil
	}

	return &models.SubmitResult{
		Completed:      false,
		NextQuestion:   session.Questions[session.CurrentIndex].Question,
		QuestionNumber: session.CurrentIndex + 1,
		TotalQuestions: session.TotalQuestions(),
	}, nil
}

// GetResults returns the cached score or computes, persists and returns it.
// A failing primary evaluator never fails this call.
func (e *Engine) GetResults(ctx context.Context, ownerID, sessionID string) (*models.ResultsView, error) {
	session, err := e.store.FindOne(ctx, store.Filter{ID: sessionID, OwnerID: ownerID, Status: models.StatusCompleted})
	if err != nil {
		return nil, notFoundOrInternal(err, models.MsgCompletedNotFound)
	}

	st, err := StateOf(session)
	if err != nil {
		return nil, err
	}
	if done, ok := st.(Completed); ok && done.Result != nil {
		return resultsView(session, *done.Result, true), nil
	}

	result, elapsed := e.score(ctx, session)
	if err := AttachScore(session, result); err != nil {
		return nil, err
	}
	if err := e.store.SaveIf(ctx, session, store.Filter{Status: models.StatusCompleted, UnscoredOnly: true}); err != nil {
		if errors.Is(err, store.ErrStale) {
			// a concurrent request persisted a score first; serve that one
			return e.cachedResults(ctx, ownerID, sessionID)
		}
		return nil, models.NewInternalError("failed to save interview results", err)
	}
	e.recordEvaluation(result.Evaluator, elapsed)

	e.logger.Info("interview scored",
		zap.String("session_id", session.ID),
		zap.String("owner_id", ownerID),
		zap.String("evaluator", result.Evaluator),
		zap.Float64("score", result.Score))

	return resultsView(session, result, false), nil
}

func (e *Engine) cachedResults(ctx context.Context, ownerID, sessionID string) (*models.ResultsView, error) {
	session, err := e.store.FindOne(ctx, store.Filter{ID: sessionID, OwnerID: ownerID, Status: models.StatusCompleted, ScoredOnly: true})
	if err != nil {
		return nil, notFoundOrInternal(err, models.MsgCompletedNotFound)
	}
	st, err := StateOf(session)
	if err != nil {
		return nil, err
	}
	done, ok := st.(Completed)
	if !ok || done.Result == nil {
		return nil, invariantError(session, "score missing after concurrent save")
	}
	return resultsView(session, *done.Result, true), nil
}

func (e *Engine) score(ctx context.Context, session *models.InterviewSession) (models.ScoreResult, time.Duration) {
	start := time.Now()
	if e.evaluator != nil {
		result, err := e.evaluator.Evaluate(ctx, session.Questions, session.Technology, session.Difficulty)
		if err == nil {
			return result, time.Since(start)
		}
		e.logger.Warn("primary evaluation failed, using heuristic fallback",
			zap.String("session_id", session.ID),
			zap.String("technology", session.Technology),
			zap.String("difficulty", session.Difficulty),
			zap.Error(err))
		start = time.Now()
	}

	result := e.fallback.Evaluate(session.Questions, session.Technology, session.Difficulty)
	return result, time.Since(start)
}

// GetHistory lists the owner's scored interviews, newest first.
func (e *Engine) GetHistory(ctx context.Context, ownerID string) (*models.HistoryResult, error) {
	if ownerID == "" {
		return nil, models.NewValidationError(models.MsgOwnerRequired)
	}
	sessions, err := e.store.Find(ctx,
		store.Filter{OwnerID: ownerID, Status: models.StatusCompleted, ScoredOnly: true},
		store.FindOptions{SortBy: store.SortByCreatedAt, Descending: true, Limit: models.HistoryLimit})
	if err != nil {
		return nil, models.NewInternalError("failed to load interview history", err)
	}

	items := make([]models.HistoryItem, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		if !s.HasScore() {
			continue
		}
		items = append(items, models.HistoryItem{
			ID:          s.ID,
			Technology:  s.Technology,
			Difficulty:  s.Difficulty,
			Score:       *s.OverallScore,
			Percentage:  utils.Percentage(*s.OverallScore),
			CompletedAt: completedAt(s),
		})
	}
	return &models.HistoryResult{Interviews: items, TotalInterviews: len(items)}, nil
}

func resultsView(s *models.InterviewSession, r models.ScoreResult, cached bool) *models.ResultsView {
	return &models.ResultsView{
		InterviewID:    s.ID,
		Technology:     s.Technology,
		Difficulty:     s.Difficulty,
		OverallScore:   r.Score,
		Feedback:       r.Feedback,
		Percentage:     utils.Percentage(r.Score),
		TotalQuestions: s.TotalQuestions(),
		CompletedAt:    completedAt(s),
		Evaluator:      r.Evaluator,
		Fallback:       r.Fallback(),
		Cached:         cached,
	}
}

func completedAt(s *models.InterviewSession) time.Time {
	if s.CompletedAt != nil {
		return *s.CompletedAt
	}
	return s.UpdatedAt
}

func notFoundOrInternal(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return models.NewNotFoundError(msg)
	}
	return models.NewInternalError("failed to load interview", err)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
