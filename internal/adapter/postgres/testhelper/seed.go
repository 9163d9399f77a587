package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/quizmod-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedFeedback inserts a minimal unprocessed feedback row and returns the
// filled domain record. Quiz, user and concept identifiers get a unique
// suffix so aggregate tests can filter on them without colliding with
// parallel tests.
func SeedFeedback(t *testing.T, pool *pgxpool.Pool, rating int) domain.FeedbackRecord {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	record := domain.FeedbackRecord{
		ID:        uuid.New(),
		QuizID:    "quiz-" + suffix,
		UserID:    "user-" + suffix,
		Concept:   "concept-" + suffix,
		Rating:    rating,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO feedback (id, quiz_id, user_id, concept, rating, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		record.ID, record.QuizID, record.UserID, record.Concept, record.Rating, record.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFeedback insert: %v", err)
	}

	return record
}
