package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lsat-prep/diagnostics/internal/models"
)

func TestConfidenceAlignment_PerfectCalibration(t *testing.T) {
	qs := []models.Question{mcq(0, "a"), mcq(1, "a"), mcq(2, "a"), mcq(3, "a")}
	got := ConfidenceAlignment(qs,
		picks(ans(0), ans(1), ans(0), ans(0)),
		confs(models.ConfidenceExtremely, models.ConfidenceExtremely, models.ConfidenceNotAtAll, models.ConfidenceNotAtAll))
	assert.InDelta(t, 100.0, got, epsilon)
}

func TestConfidenceAlignment_WorstCalibration(t *testing.T) {
	qs := []models.Question{mcq(0, "a"), mcq(1, "a")}
	got := ConfidenceAlignment(qs,
		picks(ans(0), ans(0)),
		confs(models.ConfidenceNotAtAll, models.ConfidenceExtremely))
	assert.InDelta(t, 0.0, got, epsilon)
}

func TestConfidenceAlignment_SkipsUnansweredAndUnrated(t *testing.T) {
	qs := []models.Question{mcq(0, "a"), mcq(1, "a"), mcq(2, "a")}
	// Only the first question counts: correct at 0.75.
	got := ConfidenceAlignment(qs,
		picks(ans(0), nil, ans(2)),
		confs(models.ConfidenceVery, models.ConfidenceExtremely, models.ConfidenceUnrated))
	assert.InDelta(t, 75.0, got, epsilon)
}

func TestConfidenceAlignment_NoValidResponses(t *testing.T) {
	qs := []models.Question{mcq(0, "a"), mcq(1, "a")}
	got := ConfidenceAlignment(qs, picks(ans(0), ans(0)), confs("", ""))
	assert.Equal(t, 0.0, got)

	assert.Equal(t, 0.0, ConfidenceAlignment(nil, nil, nil))
}

func TestConfidenceAlignment_Mixed(t *testing.T) {
	qs := []models.Question{mcq(0, "a"), mcq(1, "a")}
	// correct at 0.5 -> 0.5, wrong at 0.25 -> 0.75 => 62.5
	got := ConfidenceAlignment(qs,
		picks(ans(0), ans(3)),
		confs(models.ConfidenceModerately, models.ConfidenceSlightly))
	assert.InDelta(t, 62.5, got, epsilon)
}
