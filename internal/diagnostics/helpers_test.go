package diagnostics

import "github.com/lsat-prep/diagnostics/internal/models"

const epsilon = 0.001

func ans(v int) *int { return &v }

func mcq(correct int, section string) models.Question {
	return models.Question{CorrectAnswerIndex: correct, Section: section}
}

func confs(ls ...models.ConfidenceLabel) []models.ConfidenceLabel { return ls }

func picks(as ...*int) []*int { return as }

// uniformConfs returns n copies of l.
func uniformConfs(n int, l models.ConfidenceLabel) []models.ConfidenceLabel {
	out := make([]models.ConfidenceLabel, n)
	for i := range out {
		out[i] = l
	}
	return out
}
