package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizforge/quizmod-backend/internal/domain"
	"github.com/quizforge/quizmod-backend/pkg/ctxutil"
)

// Resolve applies a moderator decision to a pending queue item.
//
// Knowledge-base side effects run before the status flips: a crash or
// conflict after remediation leaves the item pending and a retry performs
// the update again, which the store tolerates. The pending → reviewed
// transition itself is a compare-and-swap, so exactly one of two concurrent
// moderators wins; the loser gets domain.ErrInvalidState.
func (s *Service) Resolve(ctx context.Context, input ResolveInput) (*domain.ReviewItem, error) {
	adminID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := s.queue.GetByID(ctx, input.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("load review item: %w", err)
	}
	if !item.IsPending() {
		return nil, fmt.Errorf("review item %s already reviewed: %w", item.ID, domain.ErrInvalidState)
	}

	actionsTaken, err := s.applyDecision(ctx, item, input)
	if err != nil {
		return nil, err
	}

	reviewedAt := time.Now().UTC()

	var resolved *domain.ReviewItem
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		resolved, err = s.queue.MarkResolved(txCtx, item.ID, adminID,
			input.Decision, input.AdminNotes, actionsTaken, reviewedAt)
		if err != nil {
			return err
		}
		return s.queue.AppendHistory(txCtx, resolved)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve review item: %w", err)
	}

	s.log.InfoContext(ctx, "review resolved",
		slog.String("review_id", item.ID.String()),
		slog.String("admin_id", adminID.String()),
		slog.String("decision", string(input.Decision)),
		slog.Any("actions", actionsTaken),
	)

	return resolved, nil
}

// applyDecision performs the decision's side effects and returns the audit
// trail. Remediation failures abort resolution so the item stays pending.
func (s *Service) applyDecision(ctx context.Context, item *domain.ReviewItem, input ResolveInput) ([]string, error) {
	switch input.Decision {
	case domain.ActionApprove:
		// Automated verdict confirmed, nothing to change.
		return []string{domain.ActionTakenApproved}, nil

	case domain.ActionReject:
		return []string{domain.ActionTakenRejected}, nil

	case domain.ActionDismiss:
		return []string{domain.ActionTakenDismissed}, nil

	case domain.ActionFlagBias:
		analysis := input.BiasOverride.ToAnalysis(time.Now().UTC())
		if err := s.remediator.Correct(ctx, item.Feedback.Concept, &analysis); err != nil {
			return nil, fmt.Errorf("flag_bias remediation: %w", err)
		}
		return []string{domain.ActionTakenManualBiasFlag, domain.ActionTakenKBUpdatedByAdmin}, nil

	case domain.ActionUpdateContent:
		if !input.ForceUpdate {
			// Decision recorded without touching the knowledge base.
			return []string{domain.ActionTakenUpdateSkipped}, nil
		}

		analysis := item.Feedback.BiasAnalysis
		if input.BiasOverride != nil {
			a := input.BiasOverride.ToAnalysis(time.Now().UTC())
			analysis = &a
		}
		if analysis == nil {
			return nil, domain.NewValidationError("bias_override", "required when the item carries no bias analysis")
		}

		if err := s.remediator.Correct(ctx, item.Feedback.Concept, analysis); err != nil {
			return nil, fmt.Errorf("forced content update: %w", err)
		}
		return []string{domain.ActionTakenForcedUpdate}, nil
	}

	return nil, domain.NewValidationError("decision", "unknown decision")
}
