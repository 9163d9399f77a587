package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizmod-backend/internal/domain"
	"github.com/quizforge/quizmod-backend/pkg/ctxutil"
)

// ManualFlag lets a moderator report bias without waiting for user feedback.
// A synthetic feedback record is stored for tracking and an urgent queue
// item is created. The flag is NOT auto-resolved: a second moderator (or the
// same one) still decides on it, which keeps the four-eyes trail intact.
func (s *Service) ManualFlag(ctx context.Context, input ManualFlagInput) (*domain.ReviewItem, error) {
	adminID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	analysis := input.Override.ToAnalysis(now)

	notes := "No notes"
	if input.AdminNotes != nil && strings.TrimSpace(*input.AdminNotes) != "" {
		notes = strings.TrimSpace(*input.AdminNotes)
	}
	comments := "Manual bias flag by admin: " + notes

	perception := domain.DifficultyJustRight
	relevance := 1

	record := &domain.FeedbackRecord{
		ID:      uuid.New(),
		QuizID:  strings.TrimSpace(input.QuizID),
		UserID:  strings.TrimSpace(input.UserID),
		Concept: strings.TrimSpace(input.Concept),
		// Synthetic low rating so the record shows up in insights.
		Rating:               1,
		Comments:             &comments,
		DifficultyPerception: &perception,
		RelevanceScore:       &relevance,
		BiasAnalysis:         &analysis,
		Processed:            true,
		CreatedAt:            now,
	}

	if err := s.feedback.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store manual flag feedback: %w", err)
	}

	item, err := s.queue.Enqueue(ctx, &domain.ReviewItem{
		ID:        uuid.New(),
		Feedback:  *record,
		Reason:    fmt.Sprintf("Manual bias flag by admin %s", adminID),
		Priority:  domain.PriorityUrgent,
		Status:    domain.StatusPending,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("enqueue manual flag: %w", err)
	}

	s.log.WarnContext(ctx, "bias flagged manually",
		slog.String("admin_id", adminID.String()),
		slog.String("quiz_id", record.QuizID),
		slog.String("concept", record.Concept),
		slog.String("review_id", item.ID.String()),
	)

	return item, nil
}
