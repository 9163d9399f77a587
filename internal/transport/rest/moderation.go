package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/quizforge/quizmod-backend/internal/domain"
	"github.com/quizforge/quizmod-backend/internal/service/review"
	"github.com/quizforge/quizmod-backend/pkg/ctxutil"
)

// reviewService defines the minimal interface needed by ModerationHandler.
type reviewService interface {
	List(ctx context.Context, input review.ListInput) ([]*domain.ReviewItem, error)
	Get(ctx context.Context, reviewID uuid.UUID) (*domain.ReviewItem, error)
	Resolve(ctx context.Context, input review.ResolveInput) (*domain.ReviewItem, error)
	ManualFlag(ctx context.Context, input review.ManualFlagInput) (*domain.ReviewItem, error)
	Stats(ctx context.Context) (domain.QueueStats, error)
	Insights(ctx context.Context) (*domain.FeedbackInsights, error)
}

// ModerationHandler serves the admin review-queue endpoints.
type ModerationHandler struct {
	svc reviewService
	log *slog.Logger
}

// NewModerationHandler creates a ModerationHandler.
func NewModerationHandler(svc reviewService, logger *slog.Logger) *ModerationHandler {
	return &ModerationHandler{svc: svc, log: logger.With("handler", "moderation")}
}

// QueueList returns review queue items, most urgent first.
// GET /admin/reviews?status=pending&priority=urgent&limit=50&offset=0
func (h *ModerationHandler) QueueList(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	input := review.ListInput{}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.ReviewStatus(v)
		input.Status = &status
	}
	if v := r.URL.Query().Get("priority"); v != "" {
		priority := domain.ReviewPriority(v)
		input.Priority = &priority
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		json.Unmarshal([]byte(v), &input.Limit) //nolint:errcheck
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		json.Unmarshal([]byte(v), &input.Offset) //nolint:errcheck
	}

	items, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReviewItemResponses(items))
}

// QueueItem returns a single review item.
// GET /admin/reviews/{id}
func (h *ModerationHandler) QueueItem(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	reviewID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	item, err := h.svc.Get(r.Context(), reviewID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReviewItemResponse(item))
}

type resolveRequest struct {
	Decision     string               `json:"decision"`
	AdminNotes   *string              `json:"adminNotes"`
	BiasOverride *biasOverrideRequest `json:"biasOverride"`
	ForceUpdate  bool                 `json:"forceUpdate"`
}

// Resolve applies a moderator decision to a pending item.
// POST /admin/reviews/{id}/resolve
func (h *ModerationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	reviewID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.Resolve(r.Context(), review.ResolveInput{
		ReviewID:     reviewID,
		Decision:     domain.ReviewAction(req.Decision),
		AdminNotes:   req.AdminNotes,
		BiasOverride: req.BiasOverride.toDomain(),
		ForceUpdate:  req.ForceUpdate,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReviewItemResponse(item))
}

type manualFlagRequest struct {
	QuizID       string               `json:"quizId"`
	UserID       string               `json:"userId"`
	Concept      string               `json:"concept"`
	BiasOverride *biasOverrideRequest `json:"biasOverride"`
	AdminNotes   *string              `json:"adminNotes"`
}

// ManualFlag creates an urgent review item from an admin-reported bias.
// POST /admin/bias-flags
func (h *ModerationHandler) ManualFlag(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req manualFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BiasOverride == nil {
		writeError(w, http.StatusBadRequest, "biasOverride is required")
		return
	}

	item, err := h.svc.ManualFlag(r.Context(), review.ManualFlagInput{
		QuizID:     req.QuizID,
		UserID:     req.UserID,
		Concept:    req.Concept,
		Override:   *req.BiasOverride.toDomain(),
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReviewItemResponse(item))
}

type queueStatsResponse struct {
	TotalItems      int            `json:"totalItems"`
	PendingReviews  int            `json:"pendingReviews"`
	Reviewed        int            `json:"reviewed"`
	PendingByPrio   map[string]int `json:"pendingByPriority"`
	DecisionCounts  map[string]int `json:"decisionCounts"`
	ManualBiasFlags int            `json:"manualBiasFlags"`
	AIAccuracy      float64        `json:"aiAccuracy"`
	HistorySize     int            `json:"historySize"`
}

// QueueStats returns aggregate queue and history counters.
// GET /admin/reviews/stats
func (h *ModerationHandler) QueueStats(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := queueStatsResponse{
		TotalItems:      stats.TotalItems,
		PendingReviews:  stats.PendingReviews,
		Reviewed:        stats.Reviewed,
		PendingByPrio:   make(map[string]int, len(stats.PendingByPrio)),
		DecisionCounts:  make(map[string]int, len(stats.DecisionCounts)),
		ManualBiasFlags: stats.ManualBiasFlags,
		AIAccuracy:      stats.AIAccuracy,
		HistorySize:     stats.HistorySize,
	}
	for prio, n := range stats.PendingByPrio {
		resp.PendingByPrio[prio.String()] = n
	}
	for decision, n := range stats.DecisionCounts {
		resp.DecisionCounts[decision.String()] = n
	}

	writeJSON(w, http.StatusOK, resp)
}

type conceptHealthResponse struct {
	Concept       string  `json:"concept"`
	AverageRating float64 `json:"averageRating"`
	FeedbackCount int     `json:"feedbackCount"`
}

type insightsResponse struct {
	TotalFeedbacks         int                     `json:"totalFeedbacks"`
	AverageRating          float64                 `json:"averageRating"`
	BiasDetectedCount      int                     `json:"biasDetectedCount"`
	BiasPercentage         float64                 `json:"biasPercentage"`
	DifficultyDistribution map[string]int          `json:"difficultyDistribution"`
	ConceptsNeedingWork    []conceptHealthResponse `json:"conceptsNeedingWork"`
	OverallHealth          string                  `json:"overallHealth"`
}

// Insights returns the aggregate feedback dashboard.
// GET /admin/insights
func (h *ModerationHandler) Insights(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	insights, err := h.svc.Insights(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := insightsResponse{
		TotalFeedbacks:         insights.TotalFeedbacks,
		AverageRating:          insights.AverageRating,
		BiasDetectedCount:      insights.BiasDetectedCount,
		BiasPercentage:         insights.BiasPercentage,
		DifficultyDistribution: make(map[string]int, len(insights.DifficultyDistribution)),
		ConceptsNeedingWork:    make([]conceptHealthResponse, 0, len(insights.ConceptsNeedingWork)),
		OverallHealth:          insights.OverallHealth,
	}
	for difficulty, n := range insights.DifficultyDistribution {
		resp.DifficultyDistribution[difficulty.String()] = n
	}
	for _, c := range insights.ConceptsNeedingWork {
		resp.ConceptsNeedingWork = append(resp.ConceptsNeedingWork, conceptHealthResponse{
			Concept:       c.Concept,
			AverageRating: c.AverageRating,
			FeedbackCount: c.FeedbackCount,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ModerationHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !ctxutil.IsAdminCtx(r.Context()) {
		writeError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}
