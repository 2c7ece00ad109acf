package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mockly/interview/internal/models"
	"mockly/interview/internal/prompts"
)

type fakeProvider struct {
	generate func(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error)
	calls    int
	prompts  []string
}

func (f *fakeProvider) GenerateContent(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.generate(ctx, prompt, requestID)
}

func (f *fakeProvider) GetProviderName() string { return "fake" }

func replying(text string) *fakeProvider {
	return &fakeProvider{generate: func(context.Context, string, string) (*models.GenerationResponse, error) {
		return &models.GenerationResponse{Content: text}, nil
	}}
}

func newEvaluator(t *testing.T, provider *fakeProvider) *LLMEvaluator {
	t.Helper()
	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}
	return NewLLMEvaluator(provider, pm, nil)
}

func TestBuildTranscript(t *testing.T) {
	got := BuildTranscript([]models.QuestionAnswer{
		{Question: "What is JSX?", Answer: "  syntax sugar  "},
		{Question: "What is a hook?", Answer: ""},
	})
	want := "Q1: What is JSX?\nAnswer: syntax sugar\n\nQ2: What is a hook?\nAnswer: No answer provided"
	if got != want {
		t.Fatalf("unexpected transcript:\n%s", got)
	}
}

func TestLLMEvaluatorSuccess(t *testing.T) {
	provider := replying("```json\n{\"score\": 7.46, \"feedback\": \"Solid answers.\"}\n```")
	ev := newEvaluator(t, provider)

	got, err := ev.Evaluate(context.Background(), answers("props flow down"), "React", "beginner")
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if got.Score != 7.5 || got.Feedback != "Solid answers." || got.Evaluator != models.EvaluatorModel {
		t.Fatalf("unexpected result: %+v", got)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}
	if !strings.Contains(provider.prompts[0], "Q1: Question\nAnswer: props flow down") {
		t.Fatalf("prompt did not include transcript: %s", provider.prompts[0])
	}
}

func TestLLMEvaluatorProviderFailure(t *testing.T) {
	provider := &fakeProvider{generate: func(context.Context, string, string) (*models.GenerationResponse, error) {
		return nil, errors.New("unavailable")
	}}
	ev := newEvaluator(t, provider)

	_, err := ev.Evaluate(context.Background(), answers("x"), "React", "beginner")
	if !errors.Is(err, models.ErrUpstreamEvaluation) {
		t.Fatalf("expected upstream evaluation error, got %v", err)
	}
}

func TestParseEvaluation(t *testing.T) {
	t.Run("clamps out of range", func(t *testing.T) {
		got, err := ParseEvaluation(`{"score": 14, "feedback": "great"}`)
		if err != nil || got.Score != 10 {
			t.Fatalf("expected clamp to 10, got %+v (%v)", got, err)
		}
		got, err = ParseEvaluation(`{"score": -2, "feedback": "poor"}`)
		if err != nil || got.Score != 0 {
			t.Fatalf("expected clamp to 0, got %+v (%v)", got, err)
		}
	})

	t.Run("numeric string score", func(t *testing.T) {
		got, err := ParseEvaluation(`{"score": "8", "feedback": "Solid answers."}`)
		if err != nil || got.Score != 8 || got.Evaluator != models.EvaluatorModel {
			t.Fatalf("expected model score 8, got %+v (%v)", got, err)
		}
		got, err = ParseEvaluation(`{"score": " 7.46 ", "feedback": "ok"}`)
		if err != nil || got.Score != 7.5 {
			t.Fatalf("expected 7.5, got %+v (%v)", got, err)
		}
	})

	t.Run("leading prose", func(t *testing.T) {
		got, err := ParseEvaluation(`Here you go: {"score": 6, "feedback": "ok"} thanks`)
		if err != nil || got.Score != 6 {
			t.Fatalf("unexpected result %+v (%v)", got, err)
		}
	})

	bad := map[string]string{
		"no json":        "I think 7 out of 10",
		"broken json":    `{"score": 7, "feedback": `,
		"missing score":  `{"feedback": "fine"}`,
		"string score":   `{"score": "seven", "feedback": "fine"}`,
		"blank feedback": `{"score": 7, "feedback": "  "}`,
		"null score":     `{"score": null, "feedback": "fine"}`,
		"NaN string":     `{"score": "NaN", "feedback": "fine"}`,
	}
	for name, input := range bad {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseEvaluation(input); !errors.Is(err, models.ErrUpstreamEvaluation) {
				t.Fatalf("expected upstream evaluation error, got %v", err)
			}
		})
	}
}
