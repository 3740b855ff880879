package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lsat-prep/diagnostics/internal/models"
)

func TestExpectedAccuracy(t *testing.T) {
	// Equal ability and difficulty → ~50%
	assert.InDelta(t, 0.5, ExpectedAccuracy(50, 50), 0.01)
	// Learner much stronger → ~88%
	assert.InDelta(t, 0.88, ExpectedAccuracy(75, 50), 0.05)
	// Learner much weaker → ~12%
	assert.InDelta(t, 0.12, ExpectedAccuracy(25, 50), 0.05)
}

func TestDifficultyScore(t *testing.T) {
	tests := []struct {
		difficulty models.Difficulty
		want       int
	}{
		{models.DifficultyEasy, 25},
		{models.DifficultyMedium, 50},
		{models.DifficultyHard, 75},
		{"", 50},
		{"brutal", 50},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DifficultyScore(tt.difficulty), "difficulty %q", tt.difficulty)
	}
}

func TestEstimateAbility(t *testing.T) {
	medium := models.Question{CorrectAnswerIndex: 0, Difficulty: models.DifficultyMedium}
	hard := models.Question{CorrectAnswerIndex: 0, Difficulty: models.DifficultyHard}
	easy := models.Question{CorrectAnswerIndex: 0, Difficulty: models.DifficultyEasy}

	assert.Equal(t, StartingAbility, EstimateAbility(nil, nil), "empty")

	// Unanswered questions do not move the estimate
	assert.Equal(t, StartingAbility, EstimateAbility([]models.Question{medium, medium}, picks(nil, nil)))

	assert.Greater(t, EstimateAbility([]models.Question{medium}, picks(ans(0))), StartingAbility, "correct medium")
	assert.Less(t, EstimateAbility([]models.Question{medium}, picks(ans(1))), StartingAbility, "wrong medium")

	// A hard question is worth more than an easy one
	gotHard := EstimateAbility([]models.Question{hard}, picks(ans(0)))
	gotEasy := EstimateAbility([]models.Question{easy}, picks(ans(0)))
	assert.Greater(t, gotHard, gotEasy)

	// Bounded
	many := make([]models.Question, 200)
	answers := make([]*int, 200)
	for i := range many {
		many[i] = hard
		answers[i] = ans(0)
	}
	assert.LessOrEqual(t, EstimateAbility(many, answers), 100)
}
