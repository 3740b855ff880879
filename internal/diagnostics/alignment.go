package diagnostics

import "github.com/lsat-prep/diagnostics/internal/models"

// ConfidenceAlignment measures (0-100) how well stated confidence predicted
// correctness. Only questions that were both answered and rated count:
// a correct answer contributes w, an incorrect one 1-w. Returns 0 when no
// question qualifies.
//
// The three slices are index-aligned; it is callers' job to pass matching
// sub-slices when scoring a single block.
func ConfidenceAlignment(questions []models.Question, answers []*int, labels []models.ConfidenceLabel) float64 {
	var sum float64
	var count int
	for i, q := range questions {
		if i >= len(answers) || i >= len(labels) {
			break
		}
		if answers[i] == nil || labels[i] == models.ConfidenceUnrated {
			continue
		}
		w := WeightOrNeutral(labels[i])
		if q.IsCorrect(answers[i]) {
			sum += w
		} else {
			sum += 1 - w
		}
		count++
	}
	if count == 0 {
		return 0
	}
	return 100 * sum / float64(count)
}
