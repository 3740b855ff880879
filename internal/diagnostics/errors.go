package diagnostics

import "errors"

var (
	// ErrMalformedInput is returned when the question, answer and confidence
	// sequences are not index-aligned, or a value is out of range.
	ErrMalformedInput = errors.New("malformed diagnostic input")

	// ErrUnknownConfidenceLabel is returned for a label outside the five-level scale.
	ErrUnknownConfidenceLabel = errors.New("unknown confidence label")
)
