package models

import "time"

type ConfidenceLabel string

const (
	ConfidenceNotAtAll   ConfidenceLabel = "not_at_all"
	ConfidenceSlightly   ConfidenceLabel = "slightly"
	ConfidenceModerately ConfidenceLabel = "moderately"
	ConfidenceVery       ConfidenceLabel = "very"
	ConfidenceExtremely  ConfidenceLabel = "extremely"

	// ConfidenceUnrated marks a question the learner did not rate.
	ConfidenceUnrated ConfidenceLabel = ""
)

var ValidConfidenceLabels = map[ConfidenceLabel]bool{
	ConfidenceNotAtAll:   true,
	ConfidenceSlightly:   true,
	ConfidenceModerately: true,
	ConfidenceVery:       true,
	ConfidenceExtremely:  true,
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultMistakeType is used when a question carries no type tag.
const DefaultMistakeType = "standard"

// ── Core Structs ───────────────────────────────────────

// Question is one item of a test as supplied by the question bank.
// It is identified by its position in the test sequence.
type Question struct {
	CorrectAnswerIndex int        `json:"correctAnswerIndex"`
	Section            string     `json:"section"`
	Topic              string     `json:"topic,omitempty"`
	Type               string     `json:"type,omitempty"`
	Difficulty         Difficulty `json:"difficulty,omitempty"`
}

// TopicOrSection returns the topic tag, falling back to the section.
func (q Question) TopicOrSection() string {
	if q.Topic != "" {
		return q.Topic
	}
	return q.Section
}

// TypeOrDefault returns the question type, falling back to "standard".
func (q Question) TypeOrDefault() string {
	if q.Type != "" {
		return q.Type
	}
	return DefaultMistakeType
}

// IsCorrect reports whether answer matches the key. A nil answer is never correct.
func (q Question) IsCorrect(answer *int) bool {
	return answer != nil && *answer == q.CorrectAnswerIndex
}

// ResponseSet is index-aligned with the question sequence. A nil answer or an
// empty confidence label means the question was left unanswered or unrated.
type ResponseSet struct {
	Answers          []*int            `json:"answers"`
	ConfidenceLevels []ConfidenceLabel `json:"confidenceLevels"`
	TimeUsedSeconds  float64           `json:"timeUsedSeconds"`
	QuestionTimes    []float64         `json:"questionTimes,omitempty"`
}

// DiagnosticInput is everything the engine needs for one submission.
type DiagnosticInput struct {
	Questions            []Question  `json:"questions"`
	Responses            ResponseSet `json:"responses"`
	ExpectedTotalSeconds float64     `json:"expectedTotalSeconds,omitempty"`
}

type Assessment struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	TimeLimitSecs int       `json:"time_limit_seconds"`
	QuestionCount int       `json:"question_count"`
	CreatedBy     *int64    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ── Request Types ─────────────────────────────────────

type DiagnoseRequest struct {
	Questions            []Question        `json:"questions" validate:"dive"`
	Answers              []*int            `json:"answers"`
	ConfidenceLevels     []ConfidenceLabel `json:"confidenceLevels"`
	TimeUsedSeconds      float64           `json:"timeUsedSeconds" validate:"gte=0"`
	ExpectedTotalSeconds float64           `json:"expectedTotalSeconds,omitempty" validate:"gte=0"`
	QuestionTimes        []float64         `json:"questionTimes,omitempty"`
}

// Input converts the wire request into engine input.
func (r DiagnoseRequest) Input() DiagnosticInput {
	return DiagnosticInput{
		Questions: r.Questions,
		Responses: ResponseSet{
			Answers:          r.Answers,
			ConfidenceLevels: r.ConfidenceLevels,
			TimeUsedSeconds:  r.TimeUsedSeconds,
			QuestionTimes:    r.QuestionTimes,
		},
		ExpectedTotalSeconds: r.ExpectedTotalSeconds,
	}
}

type DiagnoseBatchRequest struct {
	Items []DiagnoseRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

type SubmitResponsesRequest struct {
	Answers          []*int            `json:"answers"`
	ConfidenceLevels []ConfidenceLabel `json:"confidenceLevels"`
	TimeUsedSeconds  float64           `json:"timeUsedSeconds" validate:"gte=0"`
	QuestionTimes    []float64         `json:"questionTimes,omitempty"`
}

type ImportAssessmentRequest struct {
	Title         string     `json:"title" validate:"required,max=255"`
	Description   string     `json:"description,omitempty"`
	TimeLimitSecs int        `json:"time_limit_seconds" validate:"gte=0"`
	Questions     []Question `json:"questions" validate:"required,min=1,dive"`
}

// ── Response Types ────────────────────────────────────

type DiagnoseResponse struct {
	Profile   *Profile `json:"profile"`
	Narrative string   `json:"narrative,omitempty"`
}

type DiagnoseBatchResponse struct {
	Profiles []*Profile `json:"profiles"`
}
