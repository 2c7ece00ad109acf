package questions

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mockly/interview/internal/llm"
	"mockly/interview/internal/models"
	"mockly/interview/internal/prompts"
)

var numberedLine = regexp.MustCompile(`^\s*\d+[.)]\s*`)

// Generator asks the language model for a numbered list of questions and
// extracts exactly Count of them.
type Generator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
	Count    int
}

func NewGenerator(provider llm.Provider, pm prompts.PromptProvider, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		provider: provider,
		prompts:  pm,
		logger:   logger,
		Count:    models.QuestionsPerInterview,
	}
}

func (g *Generator) GenerateQuestions(ctx context.Context, technology, difficulty string) ([]string, error) {
	prompt, err := g.prompts.BuildPrompt(prompts.ModeQuestions, prompts.VariantGenerate, prompts.Data{
		Technology: technology,
		Difficulty: difficulty,
		Count:      g.Count,
	})
	if err != nil {
		return nil, models.NewUpstreamGenerationError(models.MsgQuestionsUnavailable, err)
	}

	requestID := uuid.NewString()
	resp, err := g.provider.GenerateContent(ctx, prompt, requestID)
	if err != nil {
		g.logger.Error("question generation failed",
			zap.String("request_id", requestID),
			zap.String("technology", technology),
			zap.String("difficulty", difficulty),
			zap.Error(err))
		return nil, models.NewUpstreamGenerationError(models.MsgQuestionsUnavailable, err)
	}

	questions := ExtractQuestions(resp.Content, g.Count)
	if len(questions) < g.Count {
		g.logger.Warn("not enough questions in model output",
			zap.String("request_id", requestID),
			zap.Int("extracted", len(questions)),
			zap.Int("required", g.Count))
		return nil, models.NewUpstreamGenerationError(models.MsgQuestionsUnavailable, nil)
	}
	return questions, nil
}

// ExtractQuestions keeps numbered lines, strips the numbering and markdown
// emphasis and returns at most limit non-empty questions.
func ExtractQuestions(text string, limit int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if !numberedLine.MatchString(line) {
			continue
		}
		q := numberedLine.ReplaceAllString(line, "")
		q = strings.Trim(strings.TrimSpace(q), "*_")
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out
}
