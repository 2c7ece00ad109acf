package prompts

import (
	"strings"
	"testing"
)

func TestPromptManagerBuildPrompt(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}

	data := Data{Technology: "React", Difficulty: "beginner", Count: 5}
	prompt, err := pm.BuildPrompt(ModeQuestions, VariantGenerate, data)
	if err != nil {
		t.Fatalf("BuildPrompt error: %v", err)
	}

	if !containsAll(prompt, []string{"Generate 5 beginner level React interview questions", "numbered 1-5"}) {
		t.Fatalf("prompt did not contain expected values: %s", prompt)
	}

	if _, err := pm.BuildPrompt("unknown", VariantGenerate, data); err == nil {
		t.Fatalf("expected error for unknown mode")
	}

	if _, err := pm.BuildPrompt(ModeQuestions, "missing", data); err == nil {
		t.Fatalf("expected error for missing variant")
	}
}

func TestPromptManagerEvaluationPrompt(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}

	transcript := "Q1: What is state?\nAnswer: data owned by a component"
	prompt, err := pm.BuildPrompt(ModeEvaluation, VariantComplete, Data{
		Technology: "React",
		Difficulty: "advanced",
		Transcript: transcript,
	})
	if err != nil {
		t.Fatalf("BuildPrompt error: %v", err)
	}

	if !containsAll(prompt, []string{"advanced level React", transcript, `"score"`, `"feedback"`}) {
		t.Fatalf("evaluation prompt missing content: %s", prompt)
	}
}

func TestGetTemplates(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}

	got := strings.Join(pm.GetTemplates(), ",")
	if got != "evaluation/complete,questions/generate" {
		t.Fatalf("unexpected templates: %s", got)
	}
}

func containsAll(haystack string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}
