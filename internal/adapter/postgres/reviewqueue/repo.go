// Package reviewqueue implements the admin review queue and its append-only
// resolution history using PostgreSQL. Fixed queries use raw SQL; the
// filtered listing is built dynamically with squirrel.
package reviewqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/quizforge/quizmod-backend/internal/adapter/postgres"
	"github.com/quizforge/quizmod-backend/internal/domain"
)

// Repo provides review queue persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review queue repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// priorityRankSQL orders priorities urgent < high < medium < low. Keep in
// sync with domain.ReviewPriority.Rank.
const priorityRankSQL = `CASE priority
	WHEN 'urgent' THEN 0
	WHEN 'high' THEN 1
	WHEN 'medium' THEN 2
	ELSE 3
END`

const itemColumns = `id, position, feedback, reason, priority, status,
	created_at, reviewed_at, reviewed_by, decision, admin_notes, actions_taken`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const enqueueSQL = `
INSERT INTO review_queue (id, feedback, reason, priority, status, created_at, actions_taken)
VALUES ($1, $2, $3, $4, 'pending', $5, $6)
RETURNING position`

const getByIDSQL = `
SELECT ` + itemColumns + `
FROM review_queue
WHERE id = $1`

const getStatusSQL = `SELECT status FROM review_queue WHERE id = $1`

// markResolvedSQL is a compare-and-swap: the transition succeeds only if the
// pre-read status was pending. A concurrent resolver loses and gets zero
// rows back. The decision markers append to the actions recorded at intake
// so the audit trail keeps auto-remediation visible after resolution.
const markResolvedSQL = `
UPDATE review_queue
SET status = 'reviewed',
    reviewed_at = $2,
    reviewed_by = $3,
    decision = $4,
    admin_notes = $5,
    actions_taken = actions_taken || $6
WHERE id = $1 AND status = 'pending'
RETURNING ` + itemColumns

const appendHistorySQL = `
INSERT INTO review_history
	(review_id, feedback, reason, priority, decision, reviewed_by,
	 admin_notes, actions_taken, created_at, reviewed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const statsSQL = `
SELECT
	count(*) AS total,
	count(*) FILTER (WHERE status = 'pending') AS pending,
	count(*) FILTER (WHERE status = 'reviewed') AS reviewed,
	count(*) FILTER (WHERE status = 'pending' AND priority = 'urgent') AS pending_urgent,
	count(*) FILTER (WHERE status = 'pending' AND priority = 'high') AS pending_high,
	count(*) FILTER (WHERE status = 'pending' AND priority = 'medium') AS pending_medium,
	count(*) FILTER (WHERE status = 'pending' AND priority = 'low') AS pending_low,
	count(*) FILTER (WHERE decision = 'approve') AS approved,
	count(*) FILTER (WHERE decision = 'reject') AS rejected,
	count(*) FILTER (WHERE decision = 'flag_bias') AS bias_flagged,
	count(*) FILTER (WHERE decision = 'update_content') AS content_updated,
	count(*) FILTER (WHERE decision = 'dismiss') AS dismissed
FROM review_queue`

const historySizeSQL = `SELECT count(*) FROM review_history`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Enqueue inserts a pending review item and returns it with the
// store-assigned position. The item keeps its own snapshot of the feedback
// and of any actions already performed at intake.
func (r *Repo) Enqueue(ctx context.Context, item *domain.ReviewItem) (*domain.ReviewItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	snapshot, err := marshalFeedback(item.Feedback)
	if err != nil {
		return nil, fmt.Errorf("review item %s: %w", item.ID, err)
	}

	actions := item.ActionsTaken
	if actions == nil {
		actions = []string{}
	}

	var position int64
	err = querier.QueryRow(ctx, enqueueSQL,
		item.ID, snapshot, item.Reason, item.Priority, item.CreatedAt, actions,
	).Scan(&position)
	if err != nil {
		return nil, mapError(err, "review_item", item.ID)
	}

	out := *item
	out.Position = position
	out.Status = domain.StatusPending
	out.ActionsTaken = actions
	return &out, nil
}

// MarkResolved transitions an item pending → reviewed via compare-and-swap.
// Returns domain.ErrNotFound if the item does not exist and
// domain.ErrInvalidState if it was already reviewed (the CAS lost).
func (r *Repo) MarkResolved(
	ctx context.Context,
	reviewID, adminID uuid.UUID,
	decision domain.ReviewAction,
	notes *string,
	actionsTaken []string,
	reviewedAt time.Time,
) (*domain.ReviewItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if actionsTaken == nil {
		actionsTaken = []string{}
	}

	row := querier.QueryRow(ctx, markResolvedSQL,
		reviewID, reviewedAt, adminID, decision, ptrStringToPgText(notes), actionsTaken,
	)

	item, err := scanItem(row)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err, "review_item", reviewID)
	}

	// Zero rows: either the item is missing or the CAS lost. Tell the two
	// apart so the caller can surface the right error.
	var status string
	switch err := querier.QueryRow(ctx, getStatusSQL, reviewID).Scan(&status); {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("review_item %s: %w", reviewID, domain.ErrNotFound)
	case err != nil:
		return nil, mapError(err, "review_item", reviewID)
	default:
		return nil, fmt.Errorf("review_item %s already %s: %w", reviewID, status, domain.ErrInvalidState)
	}
}

// AppendHistory writes the immutable resolution record. One entry per
// review_id; re-insertion surfaces as domain.ErrAlreadyExists.
func (r *Repo) AppendHistory(ctx context.Context, item *domain.ReviewItem) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	snapshot, err := marshalFeedback(item.Feedback)
	if err != nil {
		return fmt.Errorf("review item %s: %w", item.ID, err)
	}

	_, err = querier.Exec(ctx, appendHistorySQL,
		item.ID, snapshot, item.Reason, item.Priority,
		item.Decision, item.ReviewedBy, ptrStringToPgText(item.AdminNotes),
		item.ActionsTaken, item.CreatedAt, item.ReviewedAt,
	)
	if err != nil {
		return mapError(err, "review_history", item.ID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a review item by primary key.
func (r *Repo) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.ReviewItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	item, err := scanItem(querier.QueryRow(ctx, getByIDSQL, reviewID))
	if err != nil {
		return nil, mapError(err, "review_item", reviewID)
	}

	return item, nil
}

// List returns a snapshot of queue items with optional status and priority
// filters. Pending items come back priority-sorted (urgent first, stable on
// insertion order within a band); reviewed items in insertion order.
func (r *Repo) List(
	ctx context.Context,
	status *domain.ReviewStatus,
	priority *domain.ReviewPriority,
	limit, offset int,
) ([]*domain.ReviewItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select(
		"id", "position", "feedback", "reason", "priority", "status",
		"created_at", "reviewed_at", "reviewed_by", "decision", "admin_notes", "actions_taken",
	).
		From("review_queue").
		PlaceholderFormat(sq.Dollar)

	if status != nil {
		builder = builder.Where(sq.Eq{"status": string(*status)})
	}
	if priority != nil {
		builder = builder.Where(sq.Eq{"priority": string(*priority)})
	}

	if status != nil && *status == domain.StatusReviewed {
		builder = builder.OrderBy("position")
	} else {
		builder = builder.OrderBy(priorityRankSQL, "position")
	}

	if limit > 0 {
		builder = builder.Limit(uint64(limit)).Offset(uint64(offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build review_queue query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list review_queue: %w", err)
	}
	defer rows.Close()

	items := []*domain.ReviewItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review_item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review_queue: %w", err)
	}

	return items, nil
}

// Stats returns aggregate queue counters plus the history size.
func (r *Repo) Stats(ctx context.Context) (domain.QueueStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		s                               domain.QueueStats
		pendingUrgent, pendingHigh      int
		pendingMedium, pendingLow       int
		approved, rejected, biasFlagged int
		contentUpdated, dismissed       int
	)

	err := querier.QueryRow(ctx, statsSQL).Scan(
		&s.TotalItems, &s.PendingReviews, &s.Reviewed,
		&pendingUrgent, &pendingHigh, &pendingMedium, &pendingLow,
		&approved, &rejected, &biasFlagged, &contentUpdated, &dismissed,
	)
	if err != nil {
		return domain.QueueStats{}, fmt.Errorf("review_queue stats: %w", err)
	}

	if err := querier.QueryRow(ctx, historySizeSQL).Scan(&s.HistorySize); err != nil {
		return domain.QueueStats{}, fmt.Errorf("review_history size: %w", err)
	}

	s.PendingByPrio = map[domain.ReviewPriority]int{
		domain.PriorityUrgent: pendingUrgent,
		domain.PriorityHigh:   pendingHigh,
		domain.PriorityMedium: pendingMedium,
		domain.PriorityLow:    pendingLow,
	}
	s.DecisionCounts = map[domain.ReviewAction]int{
		domain.ActionApprove:       approved,
		domain.ActionReject:        rejected,
		domain.ActionFlagBias:      biasFlagged,
		domain.ActionUpdateContent: contentUpdated,
		domain.ActionDismiss:       dismissed,
	}
	s.ManualBiasFlags = biasFlagged

	// AI accuracy is the share of reviews where the admin confirmed the
	// automated verdict, as a percentage.
	if s.Reviewed > 0 {
		s.AIAccuracy = float64(approved) / float64(s.Reviewed) * 100
	}

	return s, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.ReviewItem, error) {
	var (
		item       domain.ReviewItem
		snapshot   []byte
		reviewedAt pgtype.Timestamptz
		reviewedBy pgtype.UUID
		decision   pgtype.Text
		adminNotes pgtype.Text
	)

	err := row.Scan(
		&item.ID, &item.Position, &snapshot, &item.Reason, &item.Priority,
		&item.Status, &item.CreatedAt, &reviewedAt, &reviewedBy,
		&decision, &adminNotes, &item.ActionsTaken,
	)
	if err != nil {
		return nil, err
	}

	feedback, err := unmarshalFeedback(snapshot)
	if err != nil {
		return nil, fmt.Errorf("review_item %s: %w", item.ID, err)
	}
	item.Feedback = feedback

	if reviewedAt.Valid {
		t := reviewedAt.Time
		item.ReviewedAt = &t
	}
	if reviewedBy.Valid {
		id := uuid.UUID(reviewedBy.Bytes)
		item.ReviewedBy = &id
	}
	if decision.Valid {
		d := domain.ReviewAction(decision.String)
		item.Decision = &d
	}
	if adminNotes.Valid {
		n := adminNotes.String
		item.AdminNotes = &n
	}

	return &item, nil
}

// feedbackSnapshotJSON is the persisted shape of the feedback snapshot owned
// by a queue item. If you rename a json tag here, migrate stored rows too.
type feedbackSnapshotJSON struct {
	ID                   uuid.UUID         `json:"id"`
	QuizID               string            `json:"quiz_id"`
	UserID               string            `json:"user_id"`
	Concept              string            `json:"concept"`
	Rating               int               `json:"rating"`
	Comments             *string           `json:"comments,omitempty"`
	DifficultyPerception *string           `json:"difficulty_perception,omitempty"`
	RelevanceScore       *int              `json:"relevance_score,omitempty"`
	BiasAnalysis         *biasAnalysisJSON `json:"bias_analysis,omitempty"`
	Processed            bool              `json:"processed"`
	CreatedAt            time.Time         `json:"created_at"`
}

type biasAnalysisJSON struct {
	HasBias         bool      `json:"has_bias"`
	BiasTypes       []string  `json:"bias_types"`
	Severity        string    `json:"severity"`
	SpecificIssues  []string  `json:"specific_issues"`
	Recommendations []string  `json:"recommendations"`
	Confidence      float64   `json:"confidence"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
}

func marshalFeedback(f domain.FeedbackRecord) ([]byte, error) {
	snap := feedbackSnapshotJSON{
		ID:             f.ID,
		QuizID:         f.QuizID,
		UserID:         f.UserID,
		Concept:        f.Concept,
		Rating:         f.Rating,
		Comments:       f.Comments,
		RelevanceScore: f.RelevanceScore,
		Processed:      f.Processed,
		CreatedAt:      f.CreatedAt,
	}
	if f.DifficultyPerception != nil {
		s := string(*f.DifficultyPerception)
		snap.DifficultyPerception = &s
	}
	if f.BiasAnalysis != nil {
		snap.BiasAnalysis = &biasAnalysisJSON{
			HasBias:         f.BiasAnalysis.HasBias,
			BiasTypes:       f.BiasAnalysis.BiasTypes,
			Severity:        string(f.BiasAnalysis.Severity),
			SpecificIssues:  f.BiasAnalysis.SpecificIssues,
			Recommendations: f.BiasAnalysis.Recommendations,
			Confidence:      f.BiasAnalysis.Confidence,
			AnalyzedAt:      f.BiasAnalysis.AnalyzedAt,
		}
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal feedback snapshot: %w", err)
	}
	return b, nil
}

func unmarshalFeedback(b []byte) (domain.FeedbackRecord, error) {
	var snap feedbackSnapshotJSON
	if err := json.Unmarshal(b, &snap); err != nil {
		return domain.FeedbackRecord{}, fmt.Errorf("unmarshal feedback snapshot: %w", err)
	}

	f := domain.FeedbackRecord{
		ID:             snap.ID,
		QuizID:         snap.QuizID,
		UserID:         snap.UserID,
		Concept:        snap.Concept,
		Rating:         snap.Rating,
		Comments:       snap.Comments,
		RelevanceScore: snap.RelevanceScore,
		Processed:      snap.Processed,
		CreatedAt:      snap.CreatedAt,
	}
	if snap.DifficultyPerception != nil {
		d := domain.DifficultyPerception(*snap.DifficultyPerception)
		f.DifficultyPerception = &d
	}
	if snap.BiasAnalysis != nil {
		f.BiasAnalysis = &domain.BiasAnalysis{
			HasBias:         snap.BiasAnalysis.HasBias,
			BiasTypes:       snap.BiasAnalysis.BiasTypes,
			Severity:        domain.BiasSeverity(snap.BiasAnalysis.Severity),
			SpecificIssues:  snap.BiasAnalysis.SpecificIssues,
			Recommendations: snap.BiasAnalysis.Recommendations,
			Confidence:      snap.BiasAnalysis.Confidence,
			AnalyzedAt:      snap.BiasAnalysis.AnalyzedAt,
		}
	}

	return f, nil
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

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
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
