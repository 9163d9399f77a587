// Package feedback implements PostgreSQL persistence for raw feedback
// records and the aggregate insight queries derived from them.
package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/quizforge/quizmod-backend/internal/adapter/postgres"
	"github.com/quizforge/quizmod-backend/internal/domain"
)

// Repo provides feedback persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new feedback repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const feedbackColumns = `id, quiz_id, user_id, concept, rating, comments,
	difficulty_perception, relevance_score, bias_analysis, processed, created_at`

const createSQL = `
INSERT INTO feedback
	(id, quiz_id, user_id, concept, rating, comments,
	 difficulty_perception, relevance_score, bias_analysis, processed, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const getByIDSQL = `
SELECT ` + feedbackColumns + `
FROM feedback
WHERE id = $1`

const markProcessedSQL = `
UPDATE feedback
SET processed = TRUE
WHERE id = $1`

const insightsSQL = `
SELECT
	count(*) AS total,
	coalesce(avg(rating), 0) AS avg_rating,
	count(*) FILTER (WHERE (bias_analysis->>'has_bias')::boolean) AS bias_detected,
	count(*) FILTER (WHERE difficulty_perception = 'too_easy') AS too_easy,
	count(*) FILTER (WHERE difficulty_perception = 'just_right') AS just_right,
	count(*) FILTER (WHERE difficulty_perception = 'too_hard') AS too_hard
FROM feedback`

// conceptHealthSQL surfaces concepts whose average rating fell below the
// given threshold, worst first.
const conceptHealthSQL = `
SELECT concept, avg(rating) AS avg_rating, count(*) AS feedback_count
FROM feedback
GROUP BY concept
HAVING avg(rating) < $1
ORDER BY avg_rating ASC, concept ASC`

// Create persists a new feedback record.
func (r *Repo) Create(ctx context.Context, f *domain.FeedbackRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	analysis, err := marshalAnalysis(f.BiasAnalysis)
	if err != nil {
		return fmt.Errorf("feedback %s: %w", f.ID, err)
	}

	var perception pgtype.Text
	if f.DifficultyPerception != nil {
		perception = pgtype.Text{String: string(*f.DifficultyPerception), Valid: true}
	}

	_, err = querier.Exec(ctx, createSQL,
		f.ID, f.QuizID, f.UserID, f.Concept, f.Rating,
		ptrStringToPgText(f.Comments), perception, f.RelevanceScore,
		analysis, f.Processed, f.CreatedAt,
	)
	if err != nil {
		return mapError(err, "feedback", f.ID)
	}

	return nil
}

// GetByID returns one feedback record by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FeedbackRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		f          domain.FeedbackRecord
		comments   pgtype.Text
		perception pgtype.Text
		relevance  pgtype.Int4
		analysis   []byte
	)

	err := querier.QueryRow(ctx, getByIDSQL, id).Scan(
		&f.ID, &f.QuizID, &f.UserID, &f.Concept, &f.Rating,
		&comments, &perception, &relevance, &analysis, &f.Processed, &f.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "feedback", id)
	}

	if comments.Valid {
		c := comments.String
		f.Comments = &c
	}
	if perception.Valid {
		p := domain.DifficultyPerception(perception.String)
		f.DifficultyPerception = &p
	}
	if relevance.Valid {
		v := int(relevance.Int32)
		f.RelevanceScore = &v
	}
	if analysis != nil {
		a, err := unmarshalAnalysis(analysis)
		if err != nil {
			return nil, fmt.Errorf("feedback %s: %w", id, err)
		}
		f.BiasAnalysis = a
	}

	return &f, nil
}

// MarkProcessed flags the record as consumed by the intake pipeline.
func (r *Repo) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markProcessedSQL, id)
	if err != nil {
		return mapError(err, "feedback", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("feedback %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Insights computes aggregate counters over all feedback plus the list of
// concepts whose average rating is below ratingThreshold.
func (r *Repo) Insights(ctx context.Context, ratingThreshold float64) (*domain.FeedbackInsights, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		ins                         domain.FeedbackInsights
		tooEasy, justRight, tooHard int
	)

	err := querier.QueryRow(ctx, insightsSQL).Scan(
		&ins.TotalFeedbacks, &ins.AverageRating, &ins.BiasDetectedCount,
		&tooEasy, &justRight, &tooHard,
	)
	if err != nil {
		return nil, fmt.Errorf("feedback insights: %w", err)
	}

	ins.DifficultyDistribution = map[domain.DifficultyPerception]int{
		domain.DifficultyTooEasy:   tooEasy,
		domain.DifficultyJustRight: justRight,
		domain.DifficultyTooHard:   tooHard,
	}
	if ins.TotalFeedbacks > 0 {
		ins.BiasPercentage = float64(ins.BiasDetectedCount) / float64(ins.TotalFeedbacks) * 100
	}

	rows, err := querier.Query(ctx, conceptHealthSQL, ratingThreshold)
	if err != nil {
		return nil, fmt.Errorf("concept health: %w", err)
	}
	defer rows.Close()

	ins.ConceptsNeedingWork = []domain.ConceptHealth{}
	for rows.Next() {
		var ch domain.ConceptHealth
		if err := rows.Scan(&ch.Concept, &ch.AverageRating, &ch.FeedbackCount); err != nil {
			return nil, fmt.Errorf("scan concept health: %w", err)
		}
		ins.ConceptsNeedingWork = append(ins.ConceptsNeedingWork, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate concept health: %w", err)
	}

	return &ins, nil
}

// biasAnalysisJSON is the persisted JSONB shape of a bias analysis.
type biasAnalysisJSON struct {
	HasBias         bool      `json:"has_bias"`
	BiasTypes       []string  `json:"bias_types"`
	Severity        string    `json:"severity"`
	SpecificIssues  []string  `json:"specific_issues"`
	Recommendations []string  `json:"recommendations"`
	Confidence      float64   `json:"confidence"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
}

func marshalAnalysis(a *domain.BiasAnalysis) ([]byte, error) {
	if a == nil {
		return nil, nil
	}

	b, err := json.Marshal(biasAnalysisJSON{
		HasBias:         a.HasBias,
		BiasTypes:       a.BiasTypes,
		Severity:        string(a.Severity),
		SpecificIssues:  a.SpecificIssues,
		Recommendations: a.Recommendations,
		Confidence:      a.Confidence,
		AnalyzedAt:      a.AnalyzedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal bias analysis: %w", err)
	}
	return b, nil
}

func unmarshalAnalysis(b []byte) (*domain.BiasAnalysis, error) {
	var raw biasAnalysisJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal bias analysis: %w", err)
	}

	return &domain.BiasAnalysis{
		HasBias:         raw.HasBias,
		BiasTypes:       raw.BiasTypes,
		Severity:        domain.BiasSeverity(raw.Severity),
		SpecificIssues:  raw.SpecificIssues,
		Recommendations: raw.Recommendations,
		Confidence:      raw.Confidence,
		AnalyzedAt:      raw.AnalyzedAt,
	}, nil
}

func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// mapError converts pgx/pgconn errors to domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
