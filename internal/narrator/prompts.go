package narrator

import (
	"fmt"
	"strings"

	"github.com/lsat-prep/diagnostics/internal/models"
)

func SystemPrompt() string {
	return `You are a supportive test-preparation coach.
You receive a DIAGNOSTIC PROFILE computed from one practice test.
Write one short paragraph (at most 120 words) addressed to the learner.
Mention their strongest area, their most pressing weakness and one concrete next step.
Use only the numbers given. Do not invent scores, percentiles or question counts.
Reply with plain text only: no headings, no lists, no JSON.`
}

// BuildUserPrompt renders the profile as the compact, rounded summary the
// model sees.
func BuildUserPrompt(p *models.Profile) string {
	var b strings.Builder
	m := p.PerformanceMetrics
	fmt.Fprintf(&b, "Overall score %.0f%%, estimated percentile %.0f.\n", m.OverallScore, p.ComparativeAnalysis.Percentile)

	b.WriteString("DIAGNOSTIC PROFILE\n")
	fmt.Fprintf(&b, "Confidence alignment: %.0f%%\n", p.ConfidenceAlignment)
	fmt.Fprintf(&b, "Time efficiency: %.0f%% (avg %.0fs vs expected %.0fs per question)\n",
		p.TimeAnalysis.TimeEfficiency, p.TimeAnalysis.AverageTimePerQuestion, p.TimeAnalysis.ExpectedTimePerQuestion)
	if p.TimeAnalysis.RushingIndicator {
		b.WriteString("Pacing: rushing\n")
	}
	fmt.Fprintf(&b, "Ability estimate: %d/100\n", p.AbilityEstimate)

	if len(p.CognitiveProfile.SkillOrder) > 0 {
		b.WriteString("Cognitive skills:")
		for _, name := range p.CognitiveProfile.SkillOrder {
			fmt.Fprintf(&b, " %s=%.0f", name, p.CognitiveProfile.Skills[name])
		}
		b.WriteString("\n")
	}

	if len(p.SubjectPerformance) > 0 {
		b.WriteString("Subjects:")
		for _, s := range p.SubjectPerformance {
			fmt.Fprintf(&b, " %s=%.0f%% (%d/%d)", s.Subject, s.Accuracy, s.CorrectCount, s.QuestionCount)
		}
		b.WriteString("\n")
	}

	if len(p.MistakePatterns.CommonMistakes) > 0 {
		b.WriteString("Recurring mistake types:")
		for _, c := range p.MistakePatterns.CommonMistakes {
			fmt.Fprintf(&b, " %s x%d", c.Type, c.Frequency)
		}
		b.WriteString("\n")
	}

	writeList(&b, "STRENGTHS", p.Insights.Strengths)
	writeList(&b, "WEAKNESSES", p.Insights.Weaknesses)
	writeList(&b, "RECOMMENDATIONS", p.Insights.Recommendations)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + ":\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
