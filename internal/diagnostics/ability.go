package diagnostics

import (
	"math"

	"github.com/lsat-prep/diagnostics/internal/models"
)

const (
	// StartingAbility is the estimate before any question is seen.
	StartingAbility = 50

	// abilityK is the per-question adjustment strength. A single test is
	// short, so the fast-convergence factor applies throughout.
	abilityK = 3.0
)

// DifficultyScore maps a difficulty tag onto the 0-100 ability scale.
// Untagged or unknown difficulties sit at the midpoint.
func DifficultyScore(d models.Difficulty) int {
	switch d {
	case models.DifficultyEasy:
		return 25
	case models.DifficultyMedium:
		return 50
	case models.DifficultyHard:
		return 75
	default:
		return 50
	}
}

// ExpectedAccuracy returns the probability a learner of the given ability
// answers a question of the given difficulty correctly.
// Sigmoid centred on 0 with scaling factor 12.5.
func ExpectedAccuracy(ability float64, difficultyScore int) float64 {
	x := (ability - float64(difficultyScore)) / 12.5
	return 1.0 / (1.0 + math.Exp(-x))
}

// EstimateAbility replays the answered questions in order, nudging the
// estimate towards each observed outcome. Unanswered questions are skipped.
func EstimateAbility(questions []models.Question, answers []*int) int {
	ability := float64(StartingAbility)
	for i, q := range questions {
		if i >= len(answers) || answers[i] == nil {
			continue
		}
		var result float64
		if q.IsCorrect(answers[i]) {
			result = 1.0
		}
		expected := ExpectedAccuracy(ability, DifficultyScore(q.Difficulty))
		ability = clamp(ability+(result-expected)*abilityK, 0, 100)
	}
	return int(math.Round(ability))
}
