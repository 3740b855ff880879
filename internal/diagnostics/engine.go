// Package diagnostics derives a learner profile from one set of test responses.
package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/lsat-prep/diagnostics/internal/models"
)

// Config controls the block layout and thresholds of the engine.
type Config struct {
	// StyleBlockSize is the number of leading questions used for learning style.
	StyleBlockSize int
	// CognitiveSkills names the positions of the cognitive block, which
	// immediately follows the style block. Its length is the block size.
	CognitiveSkills []string
	// ExpectedSecondsPerQuestion sets the expected pace when an input does
	// not carry its own expected total.
	ExpectedSecondsPerQuestion float64
	// LenientConfidence treats unknown confidence labels as neutral instead
	// of rejecting the input.
	LenientConfidence bool
	// MisalignmentAlertCount is how many confident wrong answers produce a
	// calibration recommendation.
	MisalignmentAlertCount int
}

func DefaultConfig() Config {
	return Config{
		StyleBlockSize:             4,
		CognitiveSkills:            append([]string(nil), DefaultCognitiveSkills...),
		ExpectedSecondsPerQuestion: 90,
		MisalignmentAlertCount:     DefaultMisalignmentAlertCount,
	}
}

// CognitiveBlockSize is the number of questions in the cognitive block.
func (c Config) CognitiveBlockSize() int {
	return len(c.CognitiveSkills)
}

// Engine computes learner profiles. It holds no per-submission state and is
// safe for concurrent use as long as inputs are not mutated while analysed.
type Engine struct {
	cfg        Config
	population PopulationModel
	logger     *slog.Logger
}

// NewEngine creates an engine. A nil population falls back to DefaultPopulation.
func NewEngine(cfg Config, population PopulationModel) *Engine {
	if cfg.StyleBlockSize < 0 {
		cfg.StyleBlockSize = 0
	}
	if cfg.MisalignmentAlertCount <= 0 {
		cfg.MisalignmentAlertCount = DefaultMisalignmentAlertCount
	}
	if population == nil {
		population = DefaultPopulation()
	}
	return &Engine{
		cfg:        cfg,
		population: population,
		logger:     slog.Default().With("component", "diagnostics"),
	}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Validate checks index alignment and value ranges. Nothing else in the
// engine runs on input that fails here.
func (e *Engine) Validate(in models.DiagnosticInput) error {
	n := len(in.Questions)
	r := in.Responses

	if len(r.Answers) != n {
		return fmt.Errorf("%w: %d answers for %d questions", ErrMalformedInput, len(r.Answers), n)
	}
	if len(r.ConfidenceLevels) != n {
		return fmt.Errorf("%w: %d confidence levels for %d questions", ErrMalformedInput, len(r.ConfidenceLevels), n)
	}
	if len(r.QuestionTimes) != 0 && len(r.QuestionTimes) != n {
		return fmt.Errorf("%w: %d question times for %d questions", ErrMalformedInput, len(r.QuestionTimes), n)
	}
	if !validSeconds(r.TimeUsedSeconds) {
		return fmt.Errorf("%w: time used %v", ErrMalformedInput, r.TimeUsedSeconds)
	}
	if !validSeconds(in.ExpectedTotalSeconds) {
		return fmt.Errorf("%w: expected total %v", ErrMalformedInput, in.ExpectedTotalSeconds)
	}

	for i, q := range in.Questions {
		if q.CorrectAnswerIndex < 0 {
			return fmt.Errorf("%w: question %d has negative answer key", ErrMalformedInput, i)
		}
		if a := r.Answers[i]; a != nil && *a < 0 {
			return fmt.Errorf("%w: answer %d is negative", ErrMalformedInput, i)
		}
		if len(r.QuestionTimes) != 0 && !validSeconds(r.QuestionTimes[i]) {
			return fmt.Errorf("%w: question time %d is %v", ErrMalformedInput, i, r.QuestionTimes[i])
		}
		if _, err := Weight(r.ConfidenceLevels[i]); err != nil {
			if !e.cfg.LenientConfidence {
				return fmt.Errorf("question %d: %w", i, err)
			}
			e.logger.Warn("unknown confidence label treated as neutral",
				"question", i, "label", string(r.ConfidenceLevels[i]))
		}
	}
	return nil
}

// Analyze validates the input and derives the full profile.
func (e *Engine) Analyze(in models.DiagnosticInput) (*models.Profile, error) {
	if err := e.Validate(in); err != nil {
		return nil, err
	}
	return e.analyze(in), nil
}

// analyze assumes in has passed Validate.
func (e *Engine) analyze(in models.DiagnosticInput) *models.Profile {
	qs := in.Questions
	answers := in.Responses.Answers
	labels := in.Responses.ConfidenceLevels
	n := len(qs)

	expectedTotal := in.ExpectedTotalSeconds
	if expectedTotal == 0 {
		expectedTotal = e.cfg.ExpectedSecondsPerQuestion * float64(n)
	}

	style := ClassifyLearningStyle(answers, e.cfg.StyleBlockSize)
	cognitive := BuildCognitiveProfile(in, e.cfg.StyleBlockSize, e.cfg.CognitiveSkills)
	alignment := ConfidenceAlignment(qs, answers, labels)

	subjectStart := min(e.cfg.StyleBlockSize+e.cfg.CognitiveBlockSize(), n)
	subjects := AggregateSubjects(qs[subjectStart:], answers[subjectStart:], labels[subjectStart:])

	timing := AnalyzeTime(n, in.Responses.TimeUsedSeconds, expectedTotal, in.Responses.QuestionTimes)
	mistakes := AnalyzeMistakes(qs, answers, labels)

	overall := OverallScore(qs, answers)
	profile := &models.Profile{
		LearningStyle:       style,
		CognitiveProfile:    cognitive,
		ConfidenceAlignment: alignment,
		SubjectPerformance:  subjects,
		TimeAnalysis:        timing,
		MistakePatterns:     mistakes,
		PerformanceMetrics:  BuildPerformanceMetrics(overall, alignment, timing),
		ComparativeAnalysis: e.population.Compare(overall),
		AbilityEstimate:     EstimateAbility(qs, answers),
		Insights: SynthesizeInsights(InsightInput{
			Cognitive:              cognitive,
			Subjects:               subjects,
			Time:                   timing,
			Mistakes:               mistakes,
			MisalignmentAlertCount: e.cfg.MisalignmentAlertCount,
		}),
	}

	e.logger.Debug("profile computed",
		"questions", n,
		"overall_score", overall,
		"confidence_alignment", alignment,
		"confident_mistakes", len(mistakes.ConfidenceMisalignment))
	return profile
}

// AnalyzeBatch computes one profile per input with at most concurrency
// analyses in flight. Results keep input order. Inputs are validated in
// index order before any analysis starts, so the lowest invalid index is
// the one reported.
func (e *Engine) AnalyzeBatch(ctx context.Context, inputs []models.DiagnosticInput, concurrency int) ([]*models.Profile, error) {
	for i := range inputs {
		if err := e.Validate(inputs[i]); err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
	}

	profiles := make([]*models.Profile, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			profiles[i] = e.analyze(inputs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}

func validSeconds(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
