package models

import "errors"

type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindConflict           ErrorKind = "conflict"
	KindNotFound           ErrorKind = "not_found"
	KindUpstreamGeneration ErrorKind = "upstream_generation"
	KindUpstreamEvaluation ErrorKind = "upstream_evaluation"
	KindAlreadyCompleted   ErrorKind = "already_completed"
	KindInternal           ErrorKind = "internal"
)

// InterviewError is returned by every interview operation that fails.
// Two errors are considered equal by errors.Is when their kinds match.
type InterviewError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *InterviewError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *InterviewError) Unwrap() error { return e.Err }

func (e *InterviewError) Is(target error) bool {
	t, ok := target.(*InterviewError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrValidation         = &InterviewError{Kind: KindValidation}
	ErrConflict           = &InterviewError{Kind: KindConflict}
	ErrNotFound           = &InterviewError{Kind: KindNotFound}
	ErrUpstreamGeneration = &InterviewError{Kind: KindUpstreamGeneration}
	ErrUpstreamEvaluation = &InterviewError{Kind: KindUpstreamEvaluation}
	ErrAlreadyCompleted   = &InterviewError{Kind: KindAlreadyCompleted}
	ErrInternal           = &InterviewError{Kind: KindInternal}
)

func NewValidationError(msg string) error {
	return &InterviewError{Kind: KindValidation, Message: msg}
}

func NewConflictError(msg string) error {
	return &InterviewError{Kind: KindConflict, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &InterviewError{Kind: KindNotFound, Message: msg}
}

func NewAlreadyCompletedError(msg string) error {
	return &InterviewError{Kind: KindAlreadyCompleted, Message: msg}
}

func NewUpstreamGenerationError(msg string, err error) error {
	return &InterviewError{Kind: KindUpstreamGeneration, Message: msg, Err: err}
}

func NewUpstreamEvaluationError(msg string, err error) error {
	return &InterviewError{Kind: KindUpstreamEvaluation, Message: msg, Err: err}
}

func NewInternalError(msg string, err error) error {
	return &InterviewError{Kind: KindInternal, Message: msg, Err: err}
}

func AsInterviewError(err error) (*InterviewError, bool) {
	var ie *InterviewError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
