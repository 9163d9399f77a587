// Package intake receives quiz feedback, classifies it for bias, applies the
// escalation rules and, where warranted, remediates the knowledge base and
// queues the record for human review.
package intake

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quizforge/quizmod-backend/internal/config"
	"github.com/quizforge/quizmod-backend/internal/domain"
)

type feedbackRepo interface {
	Create(ctx context.Context, f *domain.FeedbackRecord) error
	MarkProcessed(ctx context.Context, id uuid.UUID) error
}

type queueRepo interface {
	Enqueue(ctx context.Context, item *domain.ReviewItem) (*domain.ReviewItem, error)
}

type biasClassifier interface {
	ClassifyBias(ctx context.Context, concept, feedbackText, userID string) (*domain.BiasAnalysis, error)
}

type remediator interface {
	Correct(ctx context.Context, concept string, analysis *domain.BiasAnalysis) error
}

// Service processes incoming feedback.
type Service struct {
	feedback   feedbackRepo
	queue      queueRepo
	classifier biasClassifier
	remediator remediator
	cfg        config.ModerationConfig
	rules      []escalationRule
	log        *slog.Logger
}

// NewService creates a new intake service.
func NewService(
	log *slog.Logger,
	cfg config.ModerationConfig,
	feedback feedbackRepo,
	queue queueRepo,
	classifier biasClassifier,
	remediator remediator,
) *Service {
	return &Service{
		feedback:   feedback,
		queue:      queue,
		classifier: classifier,
		remediator: remediator,
		cfg:        cfg,
		rules:      defaultRules(),
		log:        log.With("service", "intake"),
	}
}
