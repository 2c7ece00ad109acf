package scoring

import (
	"fmt"
	"math"
	"strings"

	"mockly/interview/internal/models"
	"mockly/interview/internal/utils"
)

// keyword signal used by the heuristic; matched case-insensitively
var Keywords = []string{"function", "variable", "object", "method", "component", "state", "event", "data", "API"}

const (
	maxKeywordPoints = 3
	pointsPerAnswer  = 8
)

// HeuristicEvaluator scores a transcript without any external call.
// It never fails and is deterministic for a given input.
type HeuristicEvaluator struct{}

func NewHeuristicEvaluator() *HeuristicEvaluator {
	return &HeuristicEvaluator{}
}

func (h *HeuristicEvaluator) Evaluate(questions []models.QuestionAnswer, technology, difficulty string) models.ScoreResult {
	total, answered := 0, 0
	for _, qa := range questions {
		answer := strings.TrimSpace(qa.Answer)
		if answer == "" {
			continue
		}
		answered++
		total += lengthPoints(answer) + keywordPoints(answer)
	}

	score := 0.0
	if answered > 0 {
		raw := float64(total) / float64(answered*pointsPerAnswer)
		score = utils.RoundOneDecimal(math.Min(raw*10, models.MaxScore))
	}

	return models.ScoreResult{
		Score:     score,
		Feedback:  BandFeedback(score, technology, difficulty),
		Evaluator: models.EvaluatorHeuristic,
	}
}

func lengthPoints(answer string) int {
	n := len([]rune(answer))
	points := 0
	if n > 20 {
		points += 2
	}
	if n > 50 {
		points += 2
	}
	if n > 100 {
		points++
	}
	return points
}

// counts distinct keywords present, capped
func keywordPoints(answer string) int {
	lower := strings.ToLower(answer)
	found := 0
	for _, kw := range Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found++
		}
	}
	if found > maxKeywordPoints {
		return maxKeywordPoints
	}
	return found
}

// BandFeedback picks the feedback sentence for a score band (8/6/4).
func BandFeedback(score float64, technology, difficulty string) string {
	switch {
	case score >= 8:
		return fmt.Sprintf("Excellent %s level %s performance! You demonstrated strong understanding and gave detailed, well-structured answers.", difficulty, technology)
	case score >= 6:
		return fmt.Sprintf("Good %s level performance in %s. You covered the key concepts; adding more depth and concrete examples would strengthen your answers.", difficulty, technology)
	case score >= 4:
		return fmt.Sprintf("Fair %s level %s interview. You showed basic understanding but several answers need more detail and technical terminology.", difficulty, technology)
	default:
		return fmt.Sprintf("Basic performance in %s level %s interview. Review the fundamentals and practice explaining concepts in complete, detailed answers.", difficulty, technology)
	}
}
