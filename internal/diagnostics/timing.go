package diagnostics

import (
	"math"

	"github.com/lsat-prep/diagnostics/internal/models"
)

// RushingRatio is the fraction of expected pace below which a learner is
// flagged as rushing. The comparison is strict.
const RushingRatio = 0.5

// AnalyzeTime derives pacing metrics from the aggregate elapsed time.
//
// perQuestion is optional; when it has one entry per question the fastest and
// slowest questions come from it, otherwise both default to the average.
func AnalyzeTime(questionCount int, timeUsedSeconds, expectedTotalSeconds float64, perQuestion []float64) models.TimeAnalysis {
	if questionCount <= 0 {
		return models.TimeAnalysis{}
	}

	n := float64(questionCount)
	avg := timeUsedSeconds / n
	expected := expectedTotalSeconds / n

	var efficiency float64
	switch {
	case avg > 0:
		efficiency = math.Min(100, expected/avg*100)
	case expected > 0:
		// Finished in zero time: capped rather than infinite.
		efficiency = 100
	}

	ta := models.TimeAnalysis{
		AverageTimePerQuestion:  avg,
		ExpectedTimePerQuestion: expected,
		FastestQuestion:         avg,
		SlowestQuestion:         avg,
		RushingIndicator:        avg < RushingRatio*expected,
		TimeEfficiency:          efficiency,
		OptimalTimeUsage:        clamp(100-math.Abs(efficiency-100), 0, 100),
	}

	if len(perQuestion) == questionCount {
		ta.FastestQuestion, ta.SlowestQuestion = perQuestion[0], perQuestion[0]
		for _, t := range perQuestion[1:] {
			ta.FastestQuestion = math.Min(ta.FastestQuestion, t)
			ta.SlowestQuestion = math.Max(ta.SlowestQuestion, t)
		}
	}
	return ta
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
