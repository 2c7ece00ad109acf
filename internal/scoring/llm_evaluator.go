package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mockly/interview/internal/llm"
	"mockly/interview/internal/models"
	"mockly/interview/internal/prompts"
	"mockly/interview/internal/utils"
)

// LLMEvaluator is the primary evaluator. Any failure is reported as an
// upstream_evaluation error so the caller can fall back.
type LLMEvaluator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewLLMEvaluator(provider llm.Provider, pm prompts.PromptProvider, logger *zap.Logger) *LLMEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMEvaluator{provider: provider, prompts: pm, logger: logger}
}

type evaluationPayload struct {
	Score    json.RawMessage `json:"score"`
	Feedback string          `json:"feedback"`
}

func (e *LLMEvaluator) Evaluate(ctx context.Context, questions []models.QuestionAnswer, technology, difficulty string) (models.ScoreResult, error) {
	prompt, err := e.prompts.BuildPrompt(prompts.ModeEvaluation, prompts.VariantComplete, prompts.Data{
		Technology: technology,
		Difficulty: difficulty,
		Transcript: BuildTranscript(questions),
	})
	if err != nil {
		return models.ScoreResult{}, models.NewUpstreamEvaluationError("failed to build evaluation prompt", err)
	}

	requestID := uuid.NewString()
	resp, err := e.provider.GenerateContent(ctx, prompt, requestID)
	if err != nil {
		return models.ScoreResult{}, models.NewUpstreamEvaluationError("evaluation request failed", err)
	}

	e.logger.Debug("evaluation response received",
		zap.String("request_id", requestID),
		zap.String("provider", e.provider.GetProviderName()),
		zap.Int("processing_time_ms", resp.Metadata.ProcessingTime))

	return ParseEvaluation(resp.Content)
}

// BuildTranscript renders question/answer pairs in interview order.
func BuildTranscript(questions []models.QuestionAnswer) string {
	blocks := make([]string, 0, len(questions))
	for i, qa := range questions {
		answer := strings.TrimSpace(qa.Answer)
		if answer == "" {
			answer = models.NoAnswerPlaceholder
		}
		blocks = append(blocks, fmt.Sprintf("Q%d: %s\nAnswer: %s", i+1, qa.Question, answer))
	}
	return strings.Join(blocks, "\n\n")
}

// ParseEvaluation decodes the model's {"score","feedback"} reply.
// Finite out-of-range scores are clamped; anything else malformed is an error.
func ParseEvaluation(raw string) (models.ScoreResult, error) {
	text := utils.StripFences(raw)
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return models.ScoreResult{}, models.NewUpstreamEvaluationError("evaluation response contained no JSON object", nil)
	}

	var payload evaluationPayload
	if err := json.NewDecoder(strings.NewReader(text[start:])).Decode(&payload); err != nil {
		return models.ScoreResult{}, models.NewUpstreamEvaluationError("failed to parse evaluation response", err)
	}
	score, ok := parseScore(payload.Score)
	if !ok {
		return models.ScoreResult{}, models.NewUpstreamEvaluationError("evaluation response missing a numeric score", nil)
	}
	feedback := strings.TrimSpace(payload.Feedback)
	if feedback == "" {
		return models.ScoreResult{}, models.NewUpstreamEvaluationError("evaluation response missing feedback", nil)
	}

	return models.ScoreResult{
		Score:     utils.RoundOneDecimal(Clamp(score)),
		Feedback:  feedback,
		Evaluator: models.EvaluatorModel,
	}, nil
}

// parseScore accepts a JSON number or a string holding one ("8", " 7.5 ").
func parseScore(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var score float64
	if err := json.Unmarshal(raw, &score); err != nil {
		var text string
		if json.Unmarshal(raw, &text) != nil {
			return 0, false
		}
		if score, err = strconv.ParseFloat(strings.TrimSpace(text), 64); err != nil {
			return 0, false
		}
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, false
	}
	return score, true
}

func Clamp(score float64) float64 {
	return math.Max(models.MinScore, math.Min(models.MaxScore, score))
}
