package models

import (
	"time"
)

// Status describes where an interview session is in its lifecycle.
// Completed is terminal.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// QuestionAnswer is one turn of an interview. Question never changes after
// creation; Answer starts empty and is written once, when the turn is current.
type QuestionAnswer struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}

// InterviewSession is the persisted record of one interview attempt.
// Questions keeps interview order and its length is fixed at creation.
type InterviewSession struct {
	ID           string           `gorm:"primaryKey;type:varchar(64)" bson:"_id" json:"id"`
	OwnerID      string           `gorm:"not null;index:idx_owner_status,priority:1" bson:"ownerId" json:"ownerId"`
	Technology   string           `gorm:"not null" bson:"technology" json:"technology"`
	Difficulty   string           `gorm:"not null" bson:"difficulty" json:"difficulty"`
	Questions    []QuestionAnswer `gorm:"type:text;serializer:json" bson:"questions" json:"questions"`
	CurrentIndex int              `gorm:"not null;default:0" bson:"currentIndex" json:"currentIndex"`
	Status       Status           `gorm:"type:varchar(16);not null;index:idx_owner_status,priority:2" bson:"status" json:"status"`

	// OverallScore, Feedback and Evaluator are set together by the first
	// successful scoring run and never rewritten.
	OverallScore *float64 `bson:"overallScore,omitempty" json:"overallScore,omitempty"`
	Feedback     *string  `gorm:"type:text" bson:"feedback,omitempty" json:"feedback,omitempty"`
	Evaluator    string   `gorm:"type:varchar(16)" bson:"evaluator,omitempty" json:"evaluator,omitempty"`

	CreatedAt   time.Time  `gorm:"index" bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// TableName keeps the SQL table aligned with the Mongo collection name.
func (InterviewSession) TableName() string {
	return "interviews"
}

// TotalQuestions is the fixed number of turns in the session.
func (s *InterviewSession) TotalQuestions() int {
	return len(s.Questions)
}

// HasScore reports whether the write-once score fields are populated.
func (s *InterviewSession) HasScore() bool {
	return s.OverallScore != nil && s.Feedback != nil
}

// Evaluator names which scorer produced a persisted result.
const (
	EvaluatorModel     = "model"
	EvaluatorHeuristic = "heuristic"
)

// ScoreResult is the output of one scoring run.
type ScoreResult struct {
	Score     float64 `json:"score"`
	Feedback  string  `json:"feedback"`
	Evaluator string  `json:"evaluator"`
}

// Fallback reports whether the deterministic evaluator produced the result.
func (r ScoreResult) Fallback() bool {
	return r.Evaluator == EvaluatorHeuristic
}
