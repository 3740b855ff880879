package assessments

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/lsat-prep/diagnostics/internal/diagnostics"
	"github.com/lsat-prep/diagnostics/internal/logger"
	"github.com/lsat-prep/diagnostics/internal/models"
)

// Narrator turns a computed profile into prose.
type Narrator interface {
	Narrate(ctx context.Context, profile *models.Profile) (string, error)
}

type Service struct {
	engine           *diagnostics.Engine
	bank             QuestionBank
	narrator         Narrator
	batchConcurrency int
	validate         *validator.Validate
}

// NewService wires the engine to a question bank. narrator may be nil.
func NewService(engine *diagnostics.Engine, bank QuestionBank, narrator Narrator, batchConcurrency int) *Service {
	if batchConcurrency <= 0 {
		batchConcurrency = 1
	}
	return &Service{
		engine:           engine,
		bank:             bank,
		narrator:         narrator,
		batchConcurrency: batchConcurrency,
		validate:         validator.New(),
	}
}

func (s *Service) checkStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// Diagnose computes a profile for inline questions and responses.
func (s *Service) Diagnose(ctx context.Context, req models.DiagnoseRequest) (*models.Profile, error) {
	if err := s.checkStruct(req); err != nil {
		return nil, err
	}
	profile, err := s.engine.Analyze(req.Input())
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("diagnosis computed",
		"questions", len(req.Questions),
		"overall_score", profile.PerformanceMetrics.OverallScore)
	return profile, nil
}

func (s *Service) DiagnoseBatch(ctx context.Context, req models.DiagnoseBatchRequest) ([]*models.Profile, error) {
	if err := s.checkStruct(req); err != nil {
		return nil, err
	}
	inputs := make([]models.DiagnosticInput, len(req.Items))
	for i, item := range req.Items {
		inputs[i] = item.Input()
	}
	profiles, err := s.engine.AnalyzeBatch(ctx, inputs, s.batchConcurrency)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("batch diagnosis computed", "items", len(profiles))
	return profiles, nil
}

func (s *Service) ImportAssessment(ctx context.Context, req models.ImportAssessmentRequest, createdBy *int64) (*models.Assessment, error) {
	if err := s.checkStruct(req); err != nil {
		return nil, err
	}
	a, err := s.bank.Import(ctx, req, createdBy)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("assessment imported", "assessment_id", a.ID, "questions", a.QuestionCount)
	return a, nil
}

func (s *Service) GetAssessment(ctx context.Context, id int64) (*models.Assessment, error) {
	return s.bank.Assessment(ctx, id)
}

// DiagnoseAssessment scores responses against a stored assessment. When
// narrate is set and a narrator is configured, a narrative is attached; a
// narrator failure is logged and the profile is still returned. A stored
// time limit sets the expected total time.
func (s *Service) DiagnoseAssessment(ctx context.Context, id int64, req models.SubmitResponsesRequest, narrate bool) (*models.DiagnoseResponse, error) {
	if err := s.checkStruct(req); err != nil {
		return nil, err
	}
	a, err := s.bank.Assessment(ctx, id)
	if err != nil {
		return nil, err
	}
	questions, err := s.bank.Questions(ctx, id)
	if err != nil {
		return nil, err
	}

	in := models.DiagnosticInput{
		Questions: questions,
		Responses: models.ResponseSet{
			Answers:          req.Answers,
			ConfidenceLevels: req.ConfidenceLevels,
			TimeUsedSeconds:  req.TimeUsedSeconds,
			QuestionTimes:    req.QuestionTimes,
		},
	}
	if a.TimeLimitSecs > 0 {
		in.ExpectedTotalSeconds = float64(a.TimeLimitSecs)
	}
	profile, err := s.engine.Analyze(in)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).With("assessment_id", id)
	resp := &models.DiagnoseResponse{Profile: profile}
	if narrate && s.narrator != nil {
		text, err := s.narrator.Narrate(ctx, profile)
		if err != nil {
			log.Warn("narration failed", "error", err)
		} else {
			resp.Narrative = text
		}
	}
	log.Info("assessment diagnosed",
		"overall_score", profile.PerformanceMetrics.OverallScore,
		"narrated", resp.Narrative != "")
	return resp, nil
}

// IsClientError reports whether err was caused by the request content.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, diagnostics.ErrMalformedInput) ||
		errors.Is(err, diagnostics.ErrUnknownConfidenceLabel)
}
