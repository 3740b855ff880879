package diagnostics

import "github.com/lsat-prep/diagnostics/internal/models"

// SkillScore returns the confidence-weighted score (0-100) for one question.
//
//	unanswered: 0
//	correct:    100 * (0.7 + 0.3*w)   range [70, 100]
//	incorrect:  100 * 0.3 * (1 - w)   range [0, 30]
//
// Confident correct answers earn more; confident wrong answers earn less.
func SkillScore(q models.Question, answer *int, label models.ConfidenceLabel) float64 {
	if answer == nil {
		return 0
	}
	w := WeightOrNeutral(label)
	if q.IsCorrect(answer) {
		return 100 * (0.7 + 0.3*w)
	}
	return 100 * (0.3 * (1 - w))
}
