package diagnostics

import (
	"sort"

	"github.com/lsat-prep/diagnostics/internal/models"
)

// CommonMistakeThreshold is the minimum frequency for a mistake type to be
// reported as a pattern. Single misses are noise.
const CommonMistakeThreshold = 2

// AnalyzeMistakes walks every question and records the incorrect ones.
// Unanswered questions count as incorrect here.
func AnalyzeMistakes(questions []models.Question, answers []*int, labels []models.ConfidenceLabel) models.MistakePatterns {
	patterns := models.MistakePatterns{
		ByType:                 make(map[string]int),
		ByTopic:                make(map[string]models.TopicMistakes),
		CommonMistakes:         []models.CommonMistake{},
		ConfidenceMisalignment: []models.ConfidenceMismatch{},
	}

	for i, q := range questions {
		if i >= len(answers) || i >= len(labels) {
			break
		}
		if q.IsCorrect(answers[i]) {
			continue
		}

		qType := q.TypeOrDefault()
		topic := q.TopicOrSection()
		patterns.ByType[qType]++

		tm := patterns.ByTopic[topic]
		tm.Count++
		tm.Questions = append(tm.Questions, models.MistakeDetail{
			Question:      i,
			Answer:        answers[i],
			CorrectAnswer: q.CorrectAnswerIndex,
			Type:          qType,
			Confidence:    labels[i],
		})
		patterns.ByTopic[topic] = tm

		if IsHighConfidence(labels[i]) {
			patterns.ConfidenceMisalignment = append(patterns.ConfidenceMisalignment, models.ConfidenceMismatch{
				Question:   i,
				Confidence: labels[i],
				Topic:      topic,
			})
		}
	}

	total := float64(len(questions))
	for qType, freq := range patterns.ByType {
		if freq < CommonMistakeThreshold {
			continue
		}
		patterns.CommonMistakes = append(patterns.CommonMistakes, models.CommonMistake{
			Type:       qType,
			Frequency:  freq,
			Percentage: 100 * float64(freq) / total,
		})
	}
	sort.Slice(patterns.CommonMistakes, func(i, j int) bool {
		a, b := patterns.CommonMistakes[i], patterns.CommonMistakes[j]
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.Type < b.Type
	})

	return patterns
}
