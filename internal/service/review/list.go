package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quizforge/quizmod-backend/internal/domain"
)

// List returns queue items with optional status and priority filters.
// Pending items come back most urgent first.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.ReviewItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.cfg.ListPageSize
	}

	items, err := s.queue.List(ctx, input.Status, input.Priority, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list review queue: %w", err)
	}
	return items, nil
}

// Get returns a single review item.
func (s *Service) Get(ctx context.Context, reviewID uuid.UUID) (*domain.ReviewItem, error) {
	item, err := s.queue.GetByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("get review item: %w", err)
	}
	return item, nil
}

// Stats returns aggregate queue and history counters.
func (s *Service) Stats(ctx context.Context) (domain.QueueStats, error) {
	stats, err := s.queue.Stats(ctx)
	if err != nil {
		return domain.QueueStats{}, fmt.Errorf("queue stats: %w", err)
	}
	return stats, nil
}

// Insights aggregates the collected feedback for the admin dashboard.
func (s *Service) Insights(ctx context.Context) (*domain.FeedbackInsights, error) {
	insights, err := s.feedback.Insights(ctx, insightsRatingThreshold)
	if err != nil {
		return nil, fmt.Errorf("feedback insights: %w", err)
	}

	insights.OverallHealth = "needs_attention"
	if insights.AverageRating >= 4.0 && insights.BiasDetectedCount == 0 {
		insights.OverallHealth = "good"
	}

	return insights, nil
}
