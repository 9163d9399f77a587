package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewItem is the unit of work in the moderation queue. The queue owns its
// own snapshot of the feedback: later mutation of the originating record
// cannot corrupt a queued decision.
//
// Position is assigned by the store at enqueue time and provides the stable
// insertion-order tie-break within a priority band.
type ReviewItem struct {
	ID         uuid.UUID
	Position   int64
	Feedback   FeedbackRecord
	Reason     string
	Priority   ReviewPriority
	Status     ReviewStatus
	CreatedAt  time.Time
	ReviewedAt *time.Time
	ReviewedBy *uuid.UUID
	Decision   *ReviewAction
	AdminNotes *string
	// ActionsTaken is the audit trail of side effects actually performed
	// during resolution.
	ActionsTaken []string
}

// IsPending reports whether the item still awaits a moderator decision.
func (r *ReviewItem) IsPending() bool { return r.Status == StatusPending }

// Resolution fields recorded when a moderator acts on an item.
const (
	ActionTakenApproved         = "ai_decision_approved"
	ActionTakenRejected         = "ai_decision_rejected"
	ActionTakenDismissed        = "review_dismissed"
	ActionTakenManualBiasFlag   = "manual_bias_flagged"
	ActionTakenKBUpdatedByAdmin = "knowledge_base_updated_by_admin"
	ActionTakenForcedUpdate     = "forced_content_update"
	ActionTakenForcedUpdateFail = "forced_update_failed"
	ActionTakenUpdateSkipped    = "update_skipped_no_force"
)

// Intake-time action markers recorded while processing a fresh submission.
const (
	ActionFlaggedForReview      = "flagged_for_review"
	ActionUrgentBiasReview      = "urgent_bias_review"
	ActionKnowledgeBaseUpdated  = "knowledge_base_updated"
	ActionKBUpdateFailed        = "knowledge_base_update_failed"
	ActionLowConfidenceFlagged  = "low_confidence_flagged"
	ActionDifficultyAdjustment  = "difficulty_adjustment_needed"
	ActionPersonalizationNeeded = "personalization_improvement_needed"
	ActionConcerningKeywords    = "concerning_keywords_detected"
	ActionAddedToAdminQueue     = "added_to_admin_queue"
)

// ResolvedReview is the outcome of a moderator decision, returned to the
// caller and mirrored into the history log.
type ResolvedReview struct {
	ReviewID     uuid.UUID
	FeedbackID   uuid.UUID
	AdminID      uuid.UUID
	Decision     ReviewAction
	AdminNotes   *string
	ActionsTaken []string
	ReviewedAt   time.Time
}

// Escalation is the outcome of evaluating a feedback record against the
// escalation rules.
type Escalation struct {
	RequiresReview bool
	Priority       ReviewPriority
	Reason         string
	// AutoRemediate is set when AI-detected medium/high severity bias should
	// trigger a corrective knowledge-base update before the item is queued.
	AutoRemediate bool
}

// QueueStats is the read-side summary of the queue and history.
type QueueStats struct {
	TotalItems      int
	PendingReviews  int
	Reviewed        int
	PendingByPrio   map[ReviewPriority]int
	DecisionCounts  map[ReviewAction]int
	ManualBiasFlags int
	// AIAccuracy is the approve share of reviewed items as a percentage,
	// 0 when nothing has been reviewed yet.
	AIAccuracy  float64
	HistorySize int
}
