package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizmod-backend/internal/domain"
	"github.com/quizforge/quizmod-backend/internal/service/review"
	"github.com/quizforge/quizmod-backend/pkg/ctxutil"
)

type reviewServiceMock struct {
	ListFunc       func(ctx context.Context, input review.ListInput) ([]*domain.ReviewItem, error)
	GetFunc        func(ctx context.Context, reviewID uuid.UUID) (*domain.ReviewItem, error)
	ResolveFunc    func(ctx context.Context, input review.ResolveInput) (*domain.ReviewItem, error)
	ManualFlagFunc func(ctx context.Context, input review.ManualFlagInput) (*domain.ReviewItem, error)
	StatsFunc      func(ctx context.Context) (domain.QueueStats, error)
	InsightsFunc   func(ctx context.Context) (*domain.FeedbackInsights, error)
}

func (m *reviewServiceMock) List(ctx context.Context, input review.ListInput) ([]*domain.ReviewItem, error) {
	return m.ListFunc(ctx, input)
}

func (m *reviewServiceMock) Get(ctx context.Context, reviewID uuid.UUID) (*domain.ReviewItem, error) {
	return m.GetFunc(ctx, reviewID)
}

func (m *reviewServiceMock) Resolve(ctx context.Context, input review.ResolveInput) (*domain.ReviewItem, error) {
	return m.ResolveFunc(ctx, input)
}

func (m *reviewServiceMock) ManualFlag(ctx context.Context, input review.ManualFlagInput) (*domain.ReviewItem, error) {
	return m.ManualFlagFunc(ctx, input)
}

func (m *reviewServiceMock) Stats(ctx context.Context) (domain.QueueStats, error) {
	return m.StatsFunc(ctx)
}

func (m *reviewServiceMock) Insights(ctx context.Context) (*domain.FeedbackInsights, error) {
	return m.InsightsFunc(ctx)
}

func adminRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := ctxutil.WithUserID(req.Context(), uuid.New())
	ctx = ctxutil.WithRole(ctx, domain.RoleAdmin.String())
	return req.WithContext(ctx)
}

func pendingItem() *domain.ReviewItem {
	return &domain.ReviewItem{
		ID:       uuid.New(),
		Position: 7,
		Feedback: domain.FeedbackRecord{
			ID:        uuid.New(),
			QuizID:    "quiz-1",
			UserID:    "user-1",
			Concept:   "budgeting",
			Rating:    1,
			CreatedAt: time.Now().UTC(),
		},
		Reason:       "Low rating detected: 1/5",
		Priority:     domain.PriorityHigh,
		Status:       domain.StatusPending,
		CreatedAt:    time.Now().UTC(),
		ActionsTaken: []string{domain.ActionFlaggedForReview},
	}
}

func TestQueueList_RequiresAdmin(t *testing.T) {
	t.Parallel()

	h := NewModerationHandler(&reviewServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/admin/reviews", nil)
	rec := httptest.NewRecorder()

	h.QueueList(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestQueueList_ParsesFilters(t *testing.T) {
	t.Parallel()

	var got review.ListInput
	svc := &reviewServiceMock{
		ListFunc: func(ctx context.Context, input review.ListInput) ([]*domain.ReviewItem, error) {
			got = input
			return []*domain.ReviewItem{pendingItem()}, nil
		},
	}
	h := NewModerationHandler(svc, testLogger())

	req := adminRequest(http.MethodGet, "/admin/reviews?status=pending&priority=urgent&limit=10&offset=20", "")
	rec := httptest.NewRecorder()

	h.QueueList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Status == nil || *got.Status != domain.StatusPending {
		t.Errorf("status = %v", got.Status)
	}
	if got.Priority == nil || *got.Priority != domain.PriorityUrgent {
		t.Errorf("priority = %v", got.Priority)
	}
	if got.Limit != 10 || got.Offset != 20 {
		t.Errorf("limit/offset = %d/%d", got.Limit, got.Offset)
	}

	var resp []reviewItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Priority != "high" {
		t.Errorf("response = %+v", resp)
	}
}

func TestQueueItem_InvalidID(t *testing.T) {
	t.Parallel()

	h := NewModerationHandler(&reviewServiceMock{}, testLogger())

	req := adminRequest(http.MethodGet, "/admin/reviews/not-a-uuid", "")
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()

	h.QueueItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestQueueItem_NotFound(t *testing.T) {
	t.Parallel()

	svc := &reviewServiceMock{
		GetFunc: func(ctx context.Context, reviewID uuid.UUID) (*domain.ReviewItem, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewModerationHandler(svc, testLogger())

	id := uuid.NewString()
	req := adminRequest(http.MethodGet, "/admin/reviews/"+id, "")
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	h.QueueItem(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestResolve_PassesInput(t *testing.T) {
	t.Parallel()

	item := pendingItem()
	var got review.ResolveInput
	svc := &reviewServiceMock{
		ResolveFunc: func(ctx context.Context, input review.ResolveInput) (*domain.ReviewItem, error) {
			got = input
			resolved := *item
			resolved.Status = domain.StatusReviewed
			decision := input.Decision
			resolved.Decision = &decision
			return &resolved, nil
		},
	}
	h := NewModerationHandler(svc, testLogger())

	body := `{
		"decision": "flag_bias",
		"adminNotes": "clear economic bias",
		"biasOverride": {
			"biasTypes": ["economic"],
			"severity": "high",
			"specificIssues": ["assumes pocket money"],
			"recommendations": ["use cost-free examples"]
		}
	}`
	req := adminRequest(http.MethodPost, "/admin/reviews/"+item.ID.String()+"/resolve", body)
	req.SetPathValue("id", item.ID.String())
	rec := httptest.NewRecorder()

	h.Resolve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.ReviewID != item.ID || got.Decision != domain.ActionFlagBias {
		t.Errorf("input = %+v", got)
	}
	if got.BiasOverride == nil || got.BiasOverride.Severity != domain.SeverityHigh {
		t.Errorf("override = %+v", got.BiasOverride)
	}

	var resp reviewItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "reviewed" || resp.Decision == nil || *resp.Decision != "flag_bias" {
		t.Errorf("response = %+v", resp)
	}
}

func TestResolve_Conflict(t *testing.T) {
	t.Parallel()

	svc := &reviewServiceMock{
		ResolveFunc: func(ctx context.Context, input review.ResolveInput) (*domain.ReviewItem, error) {
			return nil, domain.ErrInvalidState
		},
	}
	h := NewModerationHandler(svc, testLogger())

	id := uuid.NewString()
	req := adminRequest(http.MethodPost, "/admin/reviews/"+id+"/resolve", `{"decision":"approve"}`)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	h.Resolve(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestManualFlag_RequiresOverride(t *testing.T) {
	t.Parallel()

	h := NewModerationHandler(&reviewServiceMock{}, testLogger())

	req := adminRequest(http.MethodPost, "/admin/bias-flags", `{"quizId":"q","userId":"u","concept":"saving"}`)
	rec := httptest.NewRecorder()

	h.ManualFlag(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestManualFlag_Created(t *testing.T) {
	t.Parallel()

	svc := &reviewServiceMock{
		ManualFlagFunc: func(ctx context.Context, input review.ManualFlagInput) (*domain.ReviewItem, error) {
			item := pendingItem()
			item.Priority = domain.PriorityUrgent
			item.Reason = "Manual bias flag by admin"
			return item, nil
		},
	}
	h := NewModerationHandler(svc, testLogger())

	body := `{
		"quizId": "quiz-2",
		"userId": "user-2",
		"concept": "saving",
		"biasOverride": {
			"biasTypes": ["cultural"],
			"severity": "medium",
			"specificIssues": ["single-culture examples"],
			"recommendations": ["broaden examples"]
		}
	}`
	req := adminRequest(http.MethodPost, "/admin/bias-flags", body)
	rec := httptest.NewRecorder()

	h.ManualFlag(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp reviewItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Priority != "urgent" || resp.Status != "pending" {
		t.Errorf("response = %+v", resp)
	}
}

func TestQueueStats_MapsEnums(t *testing.T) {
	t.Parallel()

	svc := &reviewServiceMock{
		StatsFunc: func(ctx context.Context) (domain.QueueStats, error) {
			return domain.QueueStats{
				TotalItems:     4,
				PendingReviews: 2,
				Reviewed:       2,
				PendingByPrio:  map[domain.ReviewPriority]int{domain.PriorityUrgent: 1, domain.PriorityLow: 1},
				DecisionCounts: map[domain.ReviewAction]int{domain.ActionApprove: 2},
				AIAccuracy:     100,
				HistorySize:    2,
			}, nil
		},
	}
	h := NewModerationHandler(svc, testLogger())

	req := adminRequest(http.MethodGet, "/admin/reviews/stats", "")
	rec := httptest.NewRecorder()

	h.QueueStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp queueStatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.PendingByPrio["urgent"] != 1 || resp.DecisionCounts["approve"] != 2 {
		t.Errorf("response = %+v", resp)
	}
	if resp.AIAccuracy != 100 {
		t.Errorf("aiAccuracy = %v, want 100", resp.AIAccuracy)
	}
}

func TestInsights_MapsDistribution(t *testing.T) {
	t.Parallel()

	svc := &reviewServiceMock{
		InsightsFunc: func(ctx context.Context) (*domain.FeedbackInsights, error) {
			return &domain.FeedbackInsights{
				TotalFeedbacks:    3,
				AverageRating:     4.3,
				BiasDetectedCount: 0,
				DifficultyDistribution: map[domain.DifficultyPerception]int{
					domain.DifficultyJustRight: 2,
					domain.DifficultyTooHard:   1,
				},
				ConceptsNeedingWork: []domain.ConceptHealth{
					{Concept: "budgeting", AverageRating: 2.5, FeedbackCount: 2},
				},
				OverallHealth: "good",
			}, nil
		},
	}
	h := NewModerationHandler(svc, testLogger())

	req := adminRequest(http.MethodGet, "/admin/insights", "")
	rec := httptest.NewRecorder()

	h.Insights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp insightsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.DifficultyDistribution["just_right"] != 2 {
		t.Errorf("distribution = %+v", resp.DifficultyDistribution)
	}
	if len(resp.ConceptsNeedingWork) != 1 || resp.ConceptsNeedingWork[0].Concept != "budgeting" {
		t.Errorf("conceptsNeedingWork = %+v", resp.ConceptsNeedingWork)
	}
	if resp.OverallHealth != "good" {
		t.Errorf("overallHealth = %q", resp.OverallHealth)
	}
}
