package models

import (
	"strings"
)

type StartInterviewRequest struct {
	Technology string `json:"technology"`
	Difficulty string `json:"difficulty"`
}

// implements the Validator interface
func (r *StartInterviewRequest) Validate() error {
	if strings.TrimSpace(r.Technology) == "" {
		return &ErrorResponse{
			Code:    "missing_technology",
			Message: "Technology is required",
		}
	}
	if strings.TrimSpace(r.Difficulty) == "" {
		return &ErrorResponse{
			Code:    "missing_difficulty",
			Message: "Difficulty is required",
		}
	}
	return nil
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if strings.TrimSpace(r.Answer) == "" {
		return &ErrorResponse{Code: "missing_answer", Message: "Answer is required"}
	}
	return nil
}
