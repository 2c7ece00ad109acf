package models

// number of questions generated for every interview
const QuestionsPerInterview = 5

// upper bound on the history listing
const HistoryLimit = 20

// score range shared by both evaluators
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// placeholder used in transcripts for unanswered questions
const NoAnswerPlaceholder = "No answer provided"

// user-facing messages
const (
	MsgActiveExists         = "You already have an active interview. Complete it first."
	MsgActiveNotFound       = "Active interview not found"
	MsgCompletedNotFound    = "Completed interview not found"
	MsgInterviewCompleted   = "Interview completed successfully! Processing your results..."
	MsgEvaluated            = "Interview evaluated successfully"
	MsgEvaluatedFallback    = "Interview evaluated successfully (fallback evaluation)"
	MsgInterviewStarted     = "Interview started successfully"
	MsgAnswerSubmitted      = "Answer submitted successfully"
	MsgHistoryFetched       = "Interview history fetched successfully"
	MsgTechnologyRequired   = "Technology and difficulty are required"
	MsgOwnerRequired        = "Owner is required"
	MsgAnswerRequired       = "Answer cannot be empty"
	MsgQuestionsUnavailable = "Failed to generate interview questions"
)
