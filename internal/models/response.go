package models

import "time"

// uniform error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// success envelope for interview routes
type Resp struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// raw text returned by a language-model provider
type GenerationResponse struct {
	Content   string             `json:"content"`
	RequestID string             `json:"request_id"`
	Metadata  GenerationMetadata `json:"metadata"`
}

type GenerationMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}

type StartResult struct {
	InterviewID    string `json:"interviewId"`
	Question       string `json:"question"`
	QuestionNumber int    `json:"questionNumber"`
	TotalQuestions int    `json:"totalQuestions"`
	Technology     string `json:"technology"`
	Difficulty     string `json:"difficulty"`
}

// SubmitResult has two shapes: NextQuestion/QuestionNumber are only set while
// the interview is still running, InterviewID only once it completed.
type SubmitResult struct {
	Completed      bool   `json:"completed"`
	NextQuestion   string `json:"nextQuestion,omitempty"`
	QuestionNumber int    `json:"questionNumber,omitempty"`
	InterviewID    string `json:"interviewId,omitempty"`
	TotalQuestions int    `json:"totalQuestions"`
}

type ResultsView struct {
	InterviewID    string    `json:"interviewId"`
	Technology     string    `json:"technology"`
	Difficulty     string    `json:"difficulty"`
	OverallScore   float64   `json:"overallScore"`
	Feedback       string    `json:"feedback"`
	Percentage     int       `json:"percentage"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
	Evaluator      string    `json:"evaluator"`
	Fallback       bool      `json:"fallback"`
	// Cached is false only on the call that computed and persisted the score.
	Cached bool `json:"cached"`
}

type HistoryItem struct {
	ID          string    `json:"id"`
	Technology  string    `json:"technology"`
	Difficulty  string    `json:"difficulty"`
	Score       float64   `json:"score"`
	Percentage  int       `json:"percentage"`
	CompletedAt time.Time `json:"completedAt"`
}

type HistoryResult struct {
	Interviews      []HistoryItem `json:"interviews"`
	TotalInterviews int           `json:"totalInterviews"`
}

// ScoredEvent is published once per session, when its score is first persisted.
type ScoredEvent struct {
	InterviewID string    `json:"interviewId"`
	OwnerID     string    `json:"ownerId"`
	Technology  string    `json:"technology"`
	Difficulty  string    `json:"difficulty"`
	Score       float64   `json:"score"`
	Evaluator   string    `json:"evaluator"`
	CompletedAt time.Time `json:"completedAt"`
}

// TranscriptRecord is one line of the scheduled JSONL export.
// Owner ids are excluded.
type TranscriptRecord struct {
	Technology string           `json:"technology"`
	Difficulty string           `json:"difficulty"`
	Transcript []QuestionAnswer `json:"transcript"`
	Score      float64          `json:"score"`
	Feedback   string           `json:"feedback"`
	Evaluator  string           `json:"evaluator"`
}
