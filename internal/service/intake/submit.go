package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizmod-backend/internal/domain"
)

// ProcessResult reports what happened to a submitted piece of feedback.
type ProcessResult struct {
	FeedbackID          uuid.UUID
	ActionsTaken        []string
	RequiresHumanReview bool
	ReviewID            *uuid.UUID
	ReviewPriority      *domain.ReviewPriority
	ReviewReason        *string
	Timestamp           time.Time
}

// Submit stores one piece of feedback and runs the moderation pipeline:
// bias classification, escalation rules, optional auto-remediation and
// queueing for human review.
//
// The classifier failing never rejects the submission. A degraded analysis
// with zero confidence is attached instead, which the low-confidence rule
// then escalates.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*ProcessResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	record := &domain.FeedbackRecord{
		ID:                   uuid.New(),
		QuizID:               strings.TrimSpace(input.QuizID),
		UserID:               strings.TrimSpace(input.UserID),
		Concept:              strings.TrimSpace(input.Concept),
		Rating:               input.Rating,
		Comments:             trimOrNil(input.Comments),
		DifficultyPerception: input.DifficultyPerception,
		RelevanceScore:       input.RelevanceScore,
		CreatedAt:            time.Now().UTC(),
	}

	if record.HasComments() {
		record.BiasAnalysis = s.classify(ctx, record.Concept, *record.Comments, record.UserID)
	}

	if err := s.feedback.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store feedback: %w", err)
	}

	result, err := s.process(ctx, record)
	if err != nil {
		return nil, err
	}

	if err := s.feedback.MarkProcessed(ctx, record.ID); err != nil {
		return nil, fmt.Errorf("mark feedback processed: %w", err)
	}

	s.log.InfoContext(ctx, "feedback processed",
		slog.String("feedback_id", record.ID.String()),
		slog.String("concept", record.Concept),
		slog.Int("rating", record.Rating),
		slog.Bool("requires_review", result.RequiresHumanReview),
		slog.Any("actions", result.ActionsTaken),
	)

	return result, nil
}

// classify calls the bias classifier and degrades gracefully on failure.
func (s *Service) classify(ctx context.Context, concept, comments, userID string) *domain.BiasAnalysis {
	analysis, err := s.classifier.ClassifyBias(ctx, concept, comments, userID)
	if err == nil {
		return analysis
	}

	s.log.ErrorContext(ctx, "bias classification failed, degrading to zero confidence",
		slog.String("concept", concept),
		slog.String("user_id", userID),
		slog.String("error", err.Error()),
	)

	return &domain.BiasAnalysis{
		HasBias:         false,
		BiasTypes:       []string{},
		Severity:        domain.SeverityLow,
		SpecificIssues:  []string{fmt.Sprintf("AI analysis failed: %v", err)},
		Recommendations: []string{"Manual review recommended"},
		Confidence:      0,
		AnalyzedAt:      time.Now().UTC(),
	}
}

// process applies the escalation rules and performs the resulting side
// effects.
func (s *Service) process(ctx context.Context, record *domain.FeedbackRecord) (*ProcessResult, error) {
	actions, escalation := s.evaluate(record)

	if escalation.AutoRemediate {
		// Remediation is best effort here: a failure is recorded and the
		// item still reaches a human reviewer, who can force the update.
		if err := s.remediator.Correct(ctx, record.Concept, record.BiasAnalysis); err != nil {
			s.log.ErrorContext(ctx, "auto-remediation failed",
				slog.String("concept", record.Concept),
				slog.String("error", err.Error()),
			)
			actions = append(actions, domain.ActionKBUpdateFailed)
		} else {
			actions = append(actions, domain.ActionKnowledgeBaseUpdated)
		}
	}

	result := &ProcessResult{
		FeedbackID:          record.ID,
		RequiresHumanReview: escalation.RequiresReview,
		Timestamp:           time.Now().UTC(),
	}

	if escalation.RequiresReview {
		actions = append(actions, domain.ActionAddedToAdminQueue)

		// The item persists the intake-time actions so the audit trail of
		// an auto-remediation survives the eventual resolution.
		item, err := s.queue.Enqueue(ctx, &domain.ReviewItem{
			ID:           uuid.New(),
			Feedback:     *record,
			Reason:       escalation.Reason,
			Priority:     escalation.Priority,
			Status:       domain.StatusPending,
			ActionsTaken: actions,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return nil, fmt.Errorf("enqueue review item: %w", err)
		}

		reviewID := item.ID
		priority := escalation.Priority
		reason := escalation.Reason
		result.ReviewID = &reviewID
		result.ReviewPriority = &priority
		result.ReviewReason = &reason
	}

	result.ActionsTaken = actions
	return result, nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
