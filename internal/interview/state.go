package interview

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mockly/interview/internal/models"
)

// State is the validated lifecycle position of a session: Active or Completed.
type State interface {
	isState()
}

// Active holds the index of the question currently awaiting an answer.
type Active struct {
	Index int
}

// Completed holds the persisted score, nil until the first scoring run.
type Completed struct {
	Result *models.ScoreResult
}

func (Active) isState()    {}
func (Completed) isState() {}

// StateOf derives the state of a stored session and rejects records that
// violate the lifecycle invariants.
func StateOf(s *models.InterviewSession) (State, error) {
	n := len(s.Questions)
	if n == 0 {
		return nil, invariantError(s, "session has no questions")
	}
	if s.CurrentIndex < 0 || s.CurrentIndex > n {
		return nil, invariantError(s, fmt.Sprintf("current index %d outside [0,%d]", s.CurrentIndex, n))
	}
	if (s.OverallScore == nil) != (s.Feedback == nil) {
		return nil, invariantError(s, "score and feedback must be set together")
	}

	switch s.Status {
	case models.StatusActive:
		if s.CurrentIndex >= n {
			return nil, models.NewAlreadyCompletedError("interview has no remaining questions")
		}
		if s.HasScore() {
			return nil, invariantError(s, "active session carries a score")
		}
		return Active{Index: s.CurrentIndex}, nil
	case models.StatusCompleted:
		if s.CurrentIndex != n {
			return nil, invariantError(s, "completed session has unanswered questions")
		}
		if !s.HasScore() {
			return Completed{}, nil
		}
		evaluator := s.Evaluator
		if evaluator == "" {
			evaluator = models.EvaluatorModel
		}
		return Completed{Result: &models.ScoreResult{
			Score:     *s.OverallScore,
			Feedback:  *s.Feedback,
			Evaluator: evaluator,
		}}, nil
	default:
		return nil, invariantError(s, fmt.Sprintf("unknown status %q", s.Status))
	}
}

// RecordAnswer writes the answer for the current question and advances the
// session, completing it after the last question. It reports whether the
// session completed.
func RecordAnswer(s *models.InterviewSession, answer string, now time.Time) (bool, error) {
	st, err := StateOf(s)
	if err != nil {
		return false, err
	}
	active, ok := st.(Active)
	if !ok {
		return false, models.NewAlreadyCompletedError("interview already completed")
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false, models.NewValidationError(models.MsgAnswerRequired)
	}

	s.Questions[active.Index].Answer = answer
	s.CurrentIndex = active.Index + 1
	if s.CurrentIndex == len(s.Questions) {
		s.Status = models.StatusCompleted
		at := now.UTC()
		s.CompletedAt = &at
		return true, nil
	}
	return false, nil
}

// AttachScore sets the write-once score fields on a completed session.
func AttachScore(s *models.InterviewSession, result models.ScoreResult) error {
	st, err := StateOf(s)
	if err != nil {
		return err
	}
	completed, ok := st.(Completed)
	if !ok {
		return invariantError(s, "cannot score an active session")
	}
	if completed.Result != nil {
		return invariantError(s, "score already recorded")
	}

	score := result.Score
	feedback := result.Feedback
	s.OverallScore = &score
	s.Feedback = &feedback
	s.Evaluator = result.Evaluator
	return nil
}

func invariantError(s *models.InterviewSession, msg string) error {
	return models.NewInternalError("invalid interview session "+s.ID, errors.New(msg))
}
