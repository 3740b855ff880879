package diagnostics

import "github.com/lsat-prep/diagnostics/internal/models"

// DefaultCognitiveSkills names the cognitive block positions in order.
var DefaultCognitiveSkills = []string{
	"logicalReasoning",
	"analyticalAbility",
	"memory",
	"spatialAbility",
	"decisionMaking",
	"patternRecognition",
	"criticalThinking",
}

// BuildCognitiveProfile scores the block starting at offset, one skill per
// position. Positions missing from the input score 0 so the overall mean
// stays defined.
func BuildCognitiveProfile(in models.DiagnosticInput, offset int, skills []string) models.CognitiveProfile {
	profile := models.CognitiveProfile{
		Skills:     make(map[string]float64, len(skills)),
		SkillOrder: append([]string(nil), skills...),
	}

	qs := in.Questions
	answers := in.Responses.Answers
	labels := in.Responses.ConfidenceLevels

	var total float64
	for i, name := range skills {
		pos := offset + i
		score := 0.0
		if pos < len(qs) && pos < len(answers) && pos < len(labels) {
			score = SkillScore(qs[pos], answers[pos], labels[pos])
		}
		profile.Skills[name] = score
		total += score
	}
	if len(skills) > 0 {
		profile.Overall = total / float64(len(skills))
	}

	lo, hi := blockBounds(min(len(qs), len(answers), len(labels)), offset, len(skills))
	profile.Alignment = ConfidenceAlignment(qs[lo:hi], answers[lo:hi], labels[lo:hi])
	return profile
}

// blockBounds clamps [offset, offset+size) to a sequence of length n.
func blockBounds(n, offset, size int) (int, int) {
	lo := min(max(offset, 0), n)
	hi := min(max(offset+size, lo), n)
	return lo, hi
}
