package diagnostics

import (
	"math"

	"github.com/lsat-prep/diagnostics/internal/models"
)

// PopulationModel turns an overall score into a peer comparison. The engine
// has no real peer data; implementations are placeholders for a statistics
// service and their numbers are not ground truth.
type PopulationModel interface {
	Compare(overallScore float64) models.ComparativeAnalysis
}

// LinearPopulation maps the overall score onto a percentile with a fixed
// straight line and derives a rank from it.
//
//	percentile = clamp(Slope*score + Intercept, 1, 99)
//	rank       = max(1, round(TotalParticipants * (1 - percentile/100)))
type LinearPopulation struct {
	AverageScore      float64
	TotalParticipants int
	Slope             float64
	Intercept         float64
}

// DefaultPopulation returns the model used when none is configured.
func DefaultPopulation() LinearPopulation {
	return LinearPopulation{
		AverageScore:      72,
		TotalParticipants: 1000,
		Slope:             0.85,
		Intercept:         10,
	}
}

func (p LinearPopulation) Compare(overallScore float64) models.ComparativeAnalysis {
	percentile := clamp(p.Slope*overallScore+p.Intercept, 1, 99)
	rank := int(math.Round(float64(p.TotalParticipants) * (1 - percentile/100)))
	if rank < 1 {
		rank = 1
	}
	return models.ComparativeAnalysis{
		Percentile:        percentile,
		AverageScore:      p.AverageScore,
		YourRank:          rank,
		TotalParticipants: p.TotalParticipants,
	}
}

// FixedPopulation always reports the same comparison.
type FixedPopulation models.ComparativeAnalysis

func (p FixedPopulation) Compare(float64) models.ComparativeAnalysis {
	return models.ComparativeAnalysis(p)
}
