package diagnostics

import "github.com/lsat-prep/diagnostics/internal/models"

// StyleIncrement is added to one style axis per answered style question.
const StyleIncrement = 25

// ClassifyLearningStyle tallies the first blockSize answers. The chosen option
// picks the axis: 0 visual, 1 auditory, 2 reading, 3 kinesthetic. Unanswered
// questions and options past 3 add nothing. The axes are not renormalised.
func ClassifyLearningStyle(answers []*int, blockSize int) models.LearningStyle {
	var style models.LearningStyle
	for i := 0; i < blockSize && i < len(answers); i++ {
		if answers[i] == nil {
			continue
		}
		switch *answers[i] {
		case 0:
			style.Visual += StyleIncrement
		case 1:
			style.Auditory += StyleIncrement
		case 2:
			style.Reading += StyleIncrement
		case 3:
			style.Kinesthetic += StyleIncrement
		}
	}
	return style
}
