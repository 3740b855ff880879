package assessments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/lsat-prep/diagnostics/internal/models"
)

// QuestionBank supplies the ordered questions of stored assessments.
type QuestionBank interface {
	Assessment(ctx context.Context, id int64) (*models.Assessment, error)
	Questions(ctx context.Context, id int64) ([]models.Question, error)
	Import(ctx context.Context, req models.ImportAssessmentRequest, createdBy *int64) (*models.Assessment, error)
}

// ── Postgres ────────────────────────────────────────────

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Import(ctx context.Context, req models.ImportAssessmentRequest, createdBy *int64) (*models.Assessment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	a := models.Assessment{
		Title:         req.Title,
		Description:   req.Description,
		TimeLimitSecs: req.TimeLimitSecs,
		QuestionCount: len(req.Questions),
		CreatedBy:     createdBy,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO assessments (title, description, time_limit_seconds, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		req.Title, nullString(req.Description), req.TimeLimitSecs, createdBy,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert assessment: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("assessment_questions",
		"assessment_id", "position", "correct_answer_index",
		"section", "topic", "question_type", "difficulty"))
	if err != nil {
		return nil, fmt.Errorf("prepare question copy: %w", err)
	}
	for i, q := range req.Questions {
		if _, err := stmt.ExecContext(ctx,
			a.ID, i, q.CorrectAnswerIndex, q.Section,
			nullString(q.Topic), nullString(q.Type), nullString(string(q.Difficulty)),
		); err != nil {
			stmt.Close()
			return nil, fmt.Errorf("copy question %d: %w", i, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return nil, fmt.Errorf("flush question copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return nil, fmt.Errorf("close question copy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return &a, nil
}

func (s *Store) Assessment(ctx context.Context, id int64) (*models.Assessment, error) {
	var a models.Assessment
	var description sql.NullString
	var createdBy sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT a.id, a.title, a.description, a.time_limit_seconds, a.created_by, a.created_at,
		        (SELECT COUNT(*) FROM assessment_questions q WHERE q.assessment_id = a.id)
		 FROM assessments a WHERE a.id = $1`,
		id,
	).Scan(&a.ID, &a.Title, &description, &a.TimeLimitSecs, &createdBy, &a.CreatedAt, &a.QuestionCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAssessmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment %d: %w", id, err)
	}
	a.Description = description.String
	if createdBy.Valid {
		a.CreatedBy = &createdBy.Int64
	}
	return &a, nil
}

func (s *Store) Questions(ctx context.Context, id int64) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT correct_answer_index, section, topic, question_type, difficulty
		 FROM assessment_questions
		 WHERE assessment_id = $1
		 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var topic, qType, difficulty sql.NullString
		if err := rows.Scan(&q.CorrectAnswerIndex, &q.Section, &topic, &qType, &difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Topic = topic.String
		q.Type = qType.String
		q.Difficulty = models.Difficulty(difficulty.String)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	if len(questions) == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM assessments WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check assessment %d: %w", id, err)
		}
		if !exists {
			return nil, ErrAssessmentNotFound
		}
	}
	return questions, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ── In-memory ───────────────────────────────────────────

// MemoryBank is a QuestionBank held in process memory.
type MemoryBank struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]memoryAssessment
	now    func() time.Time
}

type memoryAssessment struct {
	meta      models.Assessment
	questions []models.Question
}

func NewMemoryBank() *MemoryBank {
	return &MemoryBank{items: make(map[int64]memoryAssessment), now: time.Now}
}

func (m *MemoryBank) Import(_ context.Context, req models.ImportAssessmentRequest, createdBy *int64) (*models.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	a := models.Assessment{
		ID:            m.nextID,
		Title:         req.Title,
		Description:   req.Description,
		TimeLimitSecs: req.TimeLimitSecs,
		QuestionCount: len(req.Questions),
		CreatedBy:     createdBy,
		CreatedAt:     m.now().UTC(),
	}
	m.items[a.ID] = memoryAssessment{
		meta:      a,
		questions: append([]models.Question(nil), req.Questions...),
	}
	return &a, nil
}

func (m *MemoryBank) Assessment(_ context.Context, id int64) (*models.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, ErrAssessmentNotFound
	}
	a := item.meta
	return &a, nil
}

func (m *MemoryBank) Questions(_ context.Context, id int64) ([]models.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, ErrAssessmentNotFound
	}
	return append([]models.Question(nil), item.questions...), nil
}
