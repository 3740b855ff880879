package assessments

import "errors"

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrInvalidRequest     = errors.New("invalid request")
)
