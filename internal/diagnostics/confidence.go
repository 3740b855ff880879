package diagnostics

import (
	"fmt"

	"github.com/lsat-prep/diagnostics/internal/models"
)

// NeutralWeight stands in for an unrated question wherever a scalar is needed.
const NeutralWeight = 0.5

var confidenceWeights = map[models.ConfidenceLabel]float64{
	models.ConfidenceNotAtAll:   0,
	models.ConfidenceSlightly:   0.25,
	models.ConfidenceModerately: 0.5,
	models.ConfidenceVery:       0.75,
	models.ConfidenceExtremely:  1,
}

// Weight maps a confidence label to its weight in [0,1]. An unrated label
// resolves to NeutralWeight; anything outside the scale is an error.
func Weight(label models.ConfidenceLabel) (float64, error) {
	if label == models.ConfidenceUnrated {
		return NeutralWeight, nil
	}
	w, ok := confidenceWeights[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownConfidenceLabel, label)
	}
	return w, nil
}

// WeightOrNeutral is Weight for labels that have already been validated.
// Unknown labels fall back to NeutralWeight.
func WeightOrNeutral(label models.ConfidenceLabel) float64 {
	w, err := Weight(label)
	if err != nil {
		return NeutralWeight
	}
	return w
}

// IsHighConfidence reports whether the learner claimed to be very or extremely sure.
func IsHighConfidence(label models.ConfidenceLabel) bool {
	return label == models.ConfidenceVery || label == models.ConfidenceExtremely
}
