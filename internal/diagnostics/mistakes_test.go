package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsat-prep/diagnostics/internal/models"
)

func TestAnalyzeMistakes_CommonMistakeThreshold(t *testing.T) {
	qs := []models.Question{
		{CorrectAnswerIndex: 0, Section: "math", Topic: "fractions", Type: "computation"},
		{CorrectAnswerIndex: 0, Section: "math", Topic: "fractions", Type: "computation"},
		{CorrectAnswerIndex: 0, Section: "math", Topic: "geometry", Type: "word_problem"},
		{CorrectAnswerIndex: 0, Section: "math", Topic: "geometry", Type: "word_problem"},
		{CorrectAnswerIndex: 0, Section: "math", Type: "diagram"},
	}
	p := AnalyzeMistakes(qs,
		picks(ans(1), ans(2), ans(0), ans(3), ans(1)),
		uniformConfs(5, models.ConfidenceModerately))

	assert.Equal(t, map[string]int{"computation": 2, "word_problem": 1, "diagram": 1}, p.ByType)

	require.Len(t, p.CommonMistakes, 1)
	assert.Equal(t, "computation", p.CommonMistakes[0].Type)
	assert.Equal(t, 2, p.CommonMistakes[0].Frequency)
	assert.InDelta(t, 40.0, p.CommonMistakes[0].Percentage, epsilon)
}

func TestAnalyzeMistakes_TopicFallbackAndDetails(t *testing.T) {
	qs := []models.Question{
		{CorrectAnswerIndex: 2, Section: "reading"},
		{CorrectAnswerIndex: 1, Section: "reading", Topic: "inference"},
	}
	p := AnalyzeMistakes(qs,
		picks(ans(0), nil),
		confs(models.ConfidenceSlightly, ""))

	require.Contains(t, p.ByTopic, "reading")
	require.Contains(t, p.ByTopic, "inference")
	assert.Equal(t, 2, p.ByType[models.DefaultMistakeType])

	reading := p.ByTopic["reading"]
	assert.Equal(t, 1, reading.Count)
	require.Len(t, reading.Questions, 1)
	assert.Equal(t, 0, reading.Questions[0].Question)
	assert.Equal(t, 2, reading.Questions[0].CorrectAnswer)
	require.NotNil(t, reading.Questions[0].Answer)
	assert.Equal(t, 0, *reading.Questions[0].Answer)

	inference := p.ByTopic["inference"]
	assert.Nil(t, inference.Questions[0].Answer)
}

func TestAnalyzeMistakes_ConfidenceMisalignment(t *testing.T) {
	qs := []models.Question{
		{CorrectAnswerIndex: 0, Section: "math", Topic: "ratios"},
		{CorrectAnswerIndex: 0, Section: "math", Topic: "ratios"},
		{CorrectAnswerIndex: 0, Section: "math", Topic: "percent"},
		{CorrectAnswerIndex: 0, Section: "math", Topic: "percent"},
	}
	p := AnalyzeMistakes(qs,
		picks(ans(1), ans(0), ans(1), ans(1)),
		confs(models.ConfidenceExtremely, models.ConfidenceExtremely, models.ConfidenceVery, models.ConfidenceModerately))

	require.Len(t, p.ConfidenceMisalignment, 2)
	assert.Equal(t, models.ConfidenceMismatch{Question: 0, Confidence: models.ConfidenceExtremely, Topic: "ratios"}, p.ConfidenceMisalignment[0])
	assert.Equal(t, models.ConfidenceMismatch{Question: 2, Confidence: models.ConfidenceVery, Topic: "percent"}, p.ConfidenceMisalignment[1])
}

func TestAnalyzeMistakes_SortedByFrequency(t *testing.T) {
	qs := []models.Question{
		{Type: "b"}, {Type: "b"},
		{Type: "a"}, {Type: "a"},
		{Type: "c"}, {Type: "c"}, {Type: "c"},
	}
	wrong := make([]*int, len(qs))
	for i := range wrong {
		wrong[i] = ans(9)
	}
	p := AnalyzeMistakes(qs, wrong, uniformConfs(len(qs), ""))

	require.Len(t, p.CommonMistakes, 3)
	assert.Equal(t, "c", p.CommonMistakes[0].Type)
	assert.Equal(t, "a", p.CommonMistakes[1].Type)
	assert.Equal(t, "b", p.CommonMistakes[2].Type)
}

func TestAnalyzeMistakes_AllCorrect(t *testing.T) {
	qs := []models.Question{mcq(0, "x"), mcq(1, "x")}
	p := AnalyzeMistakes(qs, picks(ans(0), ans(1)), confs("", ""))
	assert.Empty(t, p.ByType)
	assert.Empty(t, p.ByTopic)
	assert.NotNil(t, p.CommonMistakes)
	assert.Empty(t, p.CommonMistakes)
	assert.Empty(t, p.ConfidenceMisalignment)
}
