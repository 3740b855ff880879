package diagnostics

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lsat-prep/diagnostics/internal/models"
)

const (
	// StrengthThreshold is the minimum score (inclusive) reported as a strength.
	StrengthThreshold = 80.0
	// WeaknessThreshold is the score below which a skill or subject is a weakness.
	WeaknessThreshold = 60.0
	// DefaultMisalignmentAlertCount is how many confident wrong answers trigger
	// the calibration recommendation.
	DefaultMisalignmentAlertCount = 2
)

// InsightInput gathers the component outputs the synthesizer reads.
type InsightInput struct {
	Cognitive              models.CognitiveProfile
	Subjects               []models.SubjectPerformance
	Time                   models.TimeAnalysis
	Mistakes               models.MistakePatterns
	MisalignmentAlertCount int
}

// SynthesizeInsights turns scores into strengths, weaknesses and template
// recommendations. Skills come first in block order, then subjects.
func SynthesizeInsights(in InsightInput) models.Insights {
	insights := models.Insights{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
	}

	for _, name := range in.Cognitive.SkillOrder {
		score := in.Cognitive.Skills[name]
		label := humanize(name)
		switch {
		case score >= StrengthThreshold:
			insights.Strengths = append(insights.Strengths, fmt.Sprintf("Strong %s (%.0f%%)", label, score))
		case score < WeaknessThreshold:
			insights.Weaknesses = append(insights.Weaknesses, fmt.Sprintf("%s needs development (%.0f%%)", capitalize(label), score))
			insights.Recommendations = append(insights.Recommendations,
				fmt.Sprintf("Practice targeted %s exercises to build this skill", label))
		}
	}

	for _, sp := range in.Subjects {
		switch {
		case sp.Accuracy >= StrengthThreshold:
			insights.Strengths = append(insights.Strengths, fmt.Sprintf("Excellent performance in %s (%.0f%% accuracy)", sp.Subject, sp.Accuracy))
		case sp.Accuracy < WeaknessThreshold:
			insights.Weaknesses = append(insights.Weaknesses, fmt.Sprintf("Low accuracy in %s (%.0f%%)", sp.Subject, sp.Accuracy))
			insights.Recommendations = append(insights.Recommendations,
				fmt.Sprintf("Review the core concepts of %s and work through practice sets", sp.Subject))
		}
	}

	if in.Time.RushingIndicator {
		insights.Recommendations = append(insights.Recommendations,
			fmt.Sprintf("Slow down: you averaged %.0fs per question against an expected %.0fs",
				in.Time.AverageTimePerQuestion, in.Time.ExpectedTimePerQuestion))
	}

	alertAt := in.MisalignmentAlertCount
	if alertAt <= 0 {
		alertAt = DefaultMisalignmentAlertCount
	}
	if n := len(in.Mistakes.ConfidenceMisalignment); n >= alertAt {
		insights.Recommendations = append(insights.Recommendations,
			fmt.Sprintf("Re-check answers you feel sure about: %d high-confidence answers were wrong", n))
	}

	return insights
}

// OverallScore is the share of all questions answered correctly (0-100).
// Unanswered questions stay in the denominator.
func OverallScore(questions []models.Question, answers []*int) float64 {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if i < len(answers) && q.IsCorrect(answers[i]) {
			correct++
		}
	}
	return 100 * float64(correct) / float64(len(questions))
}

// ImprovementPotential is a deterministic headroom heuristic: a floor of 5
// plus a fifth of the distance to a perfect score.
func ImprovementPotential(overallScore float64) float64 {
	return clamp(5+0.2*(100-overallScore), 0, 100)
}

func BuildPerformanceMetrics(overallScore, alignment float64, ta models.TimeAnalysis) models.PerformanceMetrics {
	return models.PerformanceMetrics{
		OverallScore:   overallScore,
		TimeManagement: ta.OptimalTimeUsage,
		Accuracy:       overallScore,
		Speed:          ta.TimeEfficiency,
		Consistency:    alignment,
		Improvement:    ImprovementPotential(overallScore),
	}
}

// humanize turns "logicalReasoning" into "logical reasoning".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			r = unicode.ToLower(r)
		}
		if r == '_' {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
