package narrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsat-prep/diagnostics/internal/config"
	"github.com/lsat-prep/diagnostics/internal/models"
)

func sampleProfile() *models.Profile {
	return &models.Profile{
		ConfidenceAlignment: 63.4,
		CognitiveProfile: models.CognitiveProfile{
			Skills:     map[string]float64{"deduction": 81.2, "induction": 40},
			SkillOrder: []string{"deduction", "induction"},
		},
		SubjectPerformance: []models.SubjectPerformance{
			{Subject: "logic", Accuracy: 75, QuestionCount: 4, CorrectCount: 3},
		},
		TimeAnalysis: models.TimeAnalysis{
			AverageTimePerQuestion:  30,
			ExpectedTimePerQuestion: 90,
			RushingIndicator:        true,
			TimeEfficiency:          100,
		},
		MistakePatterns: models.MistakePatterns{
			CommonMistakes: []models.CommonMistake{{Type: "assumption", Frequency: 3, Percentage: 60}},
		},
		PerformanceMetrics:  models.PerformanceMetrics{OverallScore: 66.67},
		ComparativeAnalysis: models.ComparativeAnalysis{Percentile: 66.7},
		AbilityEstimate:     54,
		Insights: models.Insights{
			Strengths:       []string{"Strong deduction (81%)"},
			Weaknesses:      []string{"Induction needs development (40%)"},
			Recommendations: []string{"Practice targeted induction exercises to build this skill"},
		},
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt(sampleProfile())

	required := []string{
		"Overall score 67%, estimated percentile 67.",
		"Confidence alignment: 63%",
		"Pacing: rushing",
		"Ability estimate: 54/100",
		"deduction=81 induction=40",
		"logic=75% (3/4)",
		"assumption x3",
		"STRENGTHS:\n- Strong deduction (81%)",
		"WEAKNESSES:",
		"RECOMMENDATIONS:",
	}
	for _, want := range required {
		assert.Contains(t, prompt, want)
	}
}

func TestBuildUserPromptOmitsEmptySections(t *testing.T) {
	prompt := BuildUserPrompt(&models.Profile{})
	assert.NotContains(t, prompt, "STRENGTHS")
	assert.NotContains(t, prompt, "Subjects:")
	assert.NotContains(t, prompt, "rushing")
}

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt()
	for _, keyword := range []string{"DIAGNOSTIC PROFILE", "120 words", "plain text"} {
		assert.Contains(t, prompt, keyword)
	}
}

type fakeClient struct {
	content string
	err     error
	system  string
	user    string
}

func (f *fakeClient) Generate(_ context.Context, system, user string) (*LLMResponse, error) {
	f.system, f.user = system, user
	if f.err != nil {
		return nil, f.err
	}
	return &LLMResponse{Content: f.content, PromptTokens: 10, OutputTokens: 5}, nil
}

func TestNarrate(t *testing.T) {
	fc := &fakeClient{content: "  You did well on deduction.  \n"}
	n := NewNarrator(fc, "test-model")

	text, err := n.Narrate(context.Background(), sampleProfile())
	require.NoError(t, err)
	assert.Equal(t, "You did well on deduction.", text)
	assert.Equal(t, SystemPrompt(), fc.system)
	assert.Contains(t, fc.user, "DIAGNOSTIC PROFILE")
	assert.Equal(t, "test-model", n.ModelName())
}

func TestNarrateErrors(t *testing.T) {
	_, err := NewNarrator(&fakeClient{content: "   "}, "m").Narrate(context.Background(), sampleProfile())
	assert.ErrorContains(t, err, "empty response")

	boom := errors.New("overloaded")
	_, err = NewNarrator(&fakeClient{err: boom}, "m").Narrate(context.Background(), sampleProfile())
	assert.ErrorIs(t, err, boom)

	_, err = NewNarrator(&fakeClient{content: "x"}, "m").Narrate(context.Background(), nil)
	assert.Error(t, err)
}

func TestMockClient(t *testing.T) {
	n := NewNarrator(NewMockClient(), "mock")
	text, err := n.Narrate(context.Background(), sampleProfile())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "[Mock] Overall score 67%"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = n.Narrate(ctx, sampleProfile())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromConfig(t *testing.T) {
	n, err := FromConfig(config.LLMConfig{NarrationMode: "mock"})
	require.NoError(t, err)
	assert.Equal(t, "mock", n.ModelName())

	n, err = FromConfig(config.LLMConfig{NarrationMode: "api", APIKey: "sk-test", Model: "claude-test"})
	require.NoError(t, err)
	assert.Equal(t, "claude-test", n.ModelName())

	_, err = FromConfig(config.LLMConfig{NarrationMode: "api"})
	assert.Error(t, err)

	_, err = FromConfig(config.LLMConfig{NarrationMode: "off"})
	assert.ErrorIs(t, err, ErrNarrationDisabled)

	_, err = FromConfig(config.LLMConfig{NarrationMode: "loud"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNarrationDisabled)
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	calls := 0
	v, err := withRetry(ctx, 3, time.Millisecond, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 3, calls)

	calls = 0
	last := errors.New("still down")
	_, err = withRetry(ctx, 2, time.Millisecond, func() (int, error) {
		calls++
		return 0, last
	})
	assert.ErrorIs(t, err, last)
	assert.Equal(t, 2, calls)

	cctx, cancel := context.WithCancel(ctx)
	calls = 0
	_, err = withRetry(cctx, 5, time.Hour, func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("fail")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
