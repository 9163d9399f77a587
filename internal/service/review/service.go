// Package review implements the moderator side of the pipeline: working the
// queue, resolving items through the decision state machine and flagging
// bias the classifier missed.
package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizmod-backend/internal/config"
	"github.com/quizforge/quizmod-backend/internal/domain"
)

// insightsRatingThreshold marks concepts whose average rating indicates the
// content needs rework.
const insightsRatingThreshold = 3.5

type queueRepo interface {
	Enqueue(ctx context.Context, item *domain.ReviewItem) (*domain.ReviewItem, error)
	GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.ReviewItem, error)
	List(ctx context.Context, status *domain.ReviewStatus, priority *domain.ReviewPriority, limit, offset int) ([]*domain.ReviewItem, error)
	MarkResolved(ctx context.Context, reviewID, adminID uuid.UUID, decision domain.ReviewAction, notes *string, actionsTaken []string, reviewedAt time.Time) (*domain.ReviewItem, error)
	AppendHistory(ctx context.Context, item *domain.ReviewItem) error
	Stats(ctx context.Context) (domain.QueueStats, error)
}

type feedbackRepo interface {
	Create(ctx context.Context, f *domain.FeedbackRecord) error
	Insights(ctx context.Context, ratingThreshold float64) (*domain.FeedbackInsights, error)
}

type remediator interface {
	Correct(ctx context.Context, concept string, analysis *domain.BiasAnalysis) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides moderator operations over the review queue.
type Service struct {
	queue      queueRepo
	feedback   feedbackRepo
	remediator remediator
	tx         txManager
	cfg        config.ModerationConfig
	log        *slog.Logger
}

// NewService creates a new review service.
func NewService(
	log *slog.Logger,
	cfg config.ModerationConfig,
	queue queueRepo,
	feedback feedbackRepo,
	remediator remediator,
	tx txManager,
) *Service {
	return &Service{
		queue:      queue,
		feedback:   feedback,
		remediator: remediator,
		tx:         tx,
		cfg:        cfg,
		log:        log.With("service", "review"),
	}
}
