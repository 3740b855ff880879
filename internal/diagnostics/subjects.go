package diagnostics

import "github.com/lsat-prep/diagnostics/internal/models"

type subjectTally struct {
	total        int
	correct      int
	answered     int
	alignmentSum float64
}

// AggregateSubjects groups questions by section, in order of first
// appearance, and reports per-subject accuracy and confidence accuracy.
//
// Accuracy divides by every question in the group, answered or not.
// Confidence accuracy averages over answered questions only, with unrated
// ones taken at NeutralWeight, and is 0 for a subject nobody answered.
func AggregateSubjects(questions []models.Question, answers []*int, labels []models.ConfidenceLabel) []models.SubjectPerformance {
	var order []string
	tallies := make(map[string]*subjectTally)

	for i, q := range questions {
		if i >= len(answers) || i >= len(labels) {
			break
		}
		t, ok := tallies[q.Section]
		if !ok {
			t = &subjectTally{}
			tallies[q.Section] = t
			order = append(order, q.Section)
		}
		t.total++
		if answers[i] == nil {
			continue
		}
		t.answered++
		w := WeightOrNeutral(labels[i])
		if q.IsCorrect(answers[i]) {
			t.correct++
			t.alignmentSum += w
		} else {
			t.alignmentSum += 1 - w
		}
	}

	results := make([]models.SubjectPerformance, 0, len(order))
	for _, subject := range order {
		t := tallies[subject]
		if t.total == 0 {
			continue
		}
		sp := models.SubjectPerformance{
			Subject:       subject,
			Accuracy:      100 * float64(t.correct) / float64(t.total),
			QuestionCount: t.total,
			CorrectCount:  t.correct,
		}
		if t.answered > 0 {
			sp.ConfidenceAccuracy = 100 * t.alignmentSum / float64(t.answered)
		}
		results = append(results, sp)
	}
	return results
}
