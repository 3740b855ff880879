package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lsat-prep/diagnostics/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func pct(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func renderProfile(p *models.Profile) string {
	var b strings.Builder
	m := p.PerformanceMetrics
	c := p.ComparativeAnalysis

	b.WriteString(titleStyle.Render(fmt.Sprintf("Overall %s", pct(m.OverallScore))))
	fmt.Fprintf(&b, "  percentile %.0f, rank %d of %d, ability %d/100\n\n",
		c.Percentile, c.YourRank, c.TotalParticipants, p.AbilityEstimate)

	metrics := newTable("Metric", "Score")
	metrics.Row("Accuracy", pct(m.Accuracy))
	metrics.Row("Confidence alignment", pct(p.ConfidenceAlignment))
	metrics.Row("Time management", pct(m.TimeManagement))
	metrics.Row("Speed", pct(m.Speed))
	metrics.Row("Consistency", pct(m.Consistency))
	metrics.Row("Improvement potential", pct(m.Improvement))
	b.WriteString(metrics.String() + "\n")

	ls := p.LearningStyle
	b.WriteString(sectionStyle.Render("Learning style") + "\n")
	fmt.Fprintf(&b, "  visual %s, auditory %s, reading %s, kinesthetic %s\n\n",
		pct(ls.Visual), pct(ls.Auditory), pct(ls.Reading), pct(ls.Kinesthetic))

	if len(p.CognitiveProfile.SkillOrder) > 0 {
		skills := newTable("Cognitive skill", "Score")
		for _, name := range p.CognitiveProfile.SkillOrder {
			skills.Row(name, pct(p.CognitiveProfile.Skills[name]))
		}
		skills.Row(dimStyle.Render("overall"), pct(p.CognitiveProfile.Overall))
		b.WriteString(skills.String() + "\n")
	}

	if len(p.SubjectPerformance) > 0 {
		subjects := newTable("Subject", "Correct", "Accuracy", "Confidence")
		for _, s := range p.SubjectPerformance {
			subjects.Row(s.Subject, fmt.Sprintf("%d/%d", s.CorrectCount, s.QuestionCount),
				pct(s.Accuracy), pct(s.ConfidenceAccuracy))
		}
		b.WriteString(subjects.String() + "\n")
	}

	t := p.TimeAnalysis
	b.WriteString(sectionStyle.Render("Timing") + "\n")
	fmt.Fprintf(&b, "  %.0fs per question (expected %.0fs), efficiency %s",
		t.AverageTimePerQuestion, t.ExpectedTimePerQuestion, pct(t.TimeEfficiency))
	if t.RushingIndicator {
		b.WriteString(", " + badStyle.Render("rushing"))
	}
	b.WriteString("\n\n")

	if len(p.MistakePatterns.CommonMistakes) > 0 {
		b.WriteString(sectionStyle.Render("Recurring mistakes") + "\n")
		for _, cm := range p.MistakePatterns.CommonMistakes {
			fmt.Fprintf(&b, "  %s: %d (%s of questions)\n", cm.Type, cm.Frequency, pct(cm.Percentage))
		}
		b.WriteString("\n")
	}

	writeList(&b, "Strengths", p.Insights.Strengths, goodStyle)
	writeList(&b, "Weaknesses", p.Insights.Weaknesses, badStyle)
	writeList(&b, "Recommendations", p.Insights.Recommendations, lipgloss.NewStyle())
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string, style lipgloss.Style) {
	if len(items) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render(title) + "\n")
	for _, item := range items {
		b.WriteString("  " + style.Render("• "+item) + "\n")
	}
	b.WriteString("\n")
}

func renderBatch(profiles []*models.Profile) string {
	t := newTable("#", "Overall", "Percentile", "Alignment", "Ability", "Top weakness")
	for i, p := range profiles {
		weakness := "-"
		if len(p.Insights.Weaknesses) > 0 {
			weakness = p.Insights.Weaknesses[0]
		}
		t.Row(
			fmt.Sprint(i),
			pct(p.PerformanceMetrics.OverallScore),
			fmt.Sprintf("%.0f", p.ComparativeAnalysis.Percentile),
			pct(p.ConfidenceAlignment),
			fmt.Sprint(p.AbilityEstimate),
			weakness,
		)
	}
	return t.String() + "\n"
}
