package review

import (
	"context"
	"errors"
	"testing"

	"github.com/quizforge/quizmod-backend/internal/domain"
)

func TestList_DefaultsLimitToPageSize(t *testing.T) {
	t.Parallel()

	svc, m := newTestService(t, nil)
	m.queue.ListFunc = func(ctx context.Context, status *domain.ReviewStatus, priority *domain.ReviewPriority, limit, offset int) ([]*domain.ReviewItem, error) {
		return []*domain.ReviewItem{}, nil
	}

	if _, err := svc.List(context.Background(), ListInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := m.queue.ListCalls()
	if len(calls) != 1 || calls[0].Limit != 100 {
		t.Errorf("List calls = %+v, want limit 100", calls)
	}
}

func TestList_InvalidStatus(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, nil)

	bogus := domain.ReviewStatus("archived")
	_, err := svc.List(context.Background(), ListInput{Status: &bogus})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

func TestList_PassesFilters(t *testing.T) {
	t.Parallel()

	svc, m := newTestService(t, nil)
	m.queue.ListFunc = func(ctx context.Context, status *domain.ReviewStatus, priority *domain.ReviewPriority, limit, offset int) ([]*domain.ReviewItem, error) {
		return []*domain.ReviewItem{}, nil
	}

	pending := domain.StatusPending
	urgent := domain.PriorityUrgent
	_, err := svc.List(context.Background(), ListInput{
		Status:   &pending,
		Priority: &urgent,
		Limit:    10,
		Offset:   20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := m.queue.ListCalls()[0]
	if call.Status == nil || *call.Status != domain.StatusPending {
		t.Errorf("status filter = %v", call.Status)
	}
	if call.Priority == nil || *call.Priority != domain.PriorityUrgent {
		t.Errorf("priority filter = %v", call.Priority)
	}
	if call.Limit != 10 || call.Offset != 20 {
		t.Errorf("limit/offset = %d/%d", call.Limit, call.Offset)
	}
}

func TestInsights_OverallHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		avgRating float64
		biasCount int
		want      string
	}{
		{"healthy", 4.5, 0, "good"},
		{"low rating", 3.2, 0, "needs_attention"},
		{"bias present", 4.8, 2, "needs_attention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, m := newTestService(t, nil)
			m.feedback.InsightsFunc = func(ctx context.Context, ratingThreshold float64) (*domain.FeedbackInsights, error) {
				if ratingThreshold != insightsRatingThreshold {
					t.Errorf("ratingThreshold = %v, want %v", ratingThreshold, insightsRatingThreshold)
				}
				return &domain.FeedbackInsights{
					TotalFeedbacks:    10,
					AverageRating:     tt.avgRating,
					BiasDetectedCount: tt.biasCount,
				}, nil
			}

			insights, err := svc.Insights(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if insights.OverallHealth != tt.want {
				t.Errorf("OverallHealth = %q, want %q", insights.OverallHealth, tt.want)
			}
		})
	}
}

func TestStats_PassesThrough(t *testing.T) {
	t.Parallel()

	svc, m := newTestService(t, nil)
	m.queue.StatsFunc = func(ctx context.Context) (domain.QueueStats, error) {
		return domain.QueueStats{TotalItems: 5, PendingReviews: 3}, nil
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalItems != 5 || stats.PendingReviews != 3 {
		t.Errorf("stats = %+v", stats)
	}
}
