package review

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizmod-backend/internal/domain"
)

var _ queueRepo = &queueRepoMock{}

type queueRepoMock struct {
	EnqueueFunc       func(ctx context.Context, item *domain.ReviewItem) (*domain.ReviewItem, error)
	GetByIDFunc       func(ctx context.Context, reviewID uuid.UUID) (*domain.ReviewItem, error)
	ListFunc          func(ctx context.Context, status *domain.ReviewStatus, priority *domain.ReviewPriority, limit, offset int) ([]*domain.ReviewItem, error)
	MarkResolvedFunc  func(ctx context.Context, reviewID, adminID uuid.UUID, decision domain.ReviewAction, notes *string, actionsTaken []string, reviewedAt time.Time) (*domain.ReviewItem, error)
	AppendHistoryFunc func(ctx context.Context, item *domain.ReviewItem) error
	StatsFunc         func(ctx context.Context) (domain.QueueStats, error)

	calls struct {
		Enqueue []struct {
			Item *domain.ReviewItem
		}
		GetByID []struct {
			ReviewID uuid.UUID
		}
		List []struct {
			Status   *domain.ReviewStatus
			Priority *domain.ReviewPriority
			Limit    int
			Offset   int
		}
		MarkResolved []struct {
			ReviewID     uuid.UUID
			AdminID      uuid.UUID
			Decision     domain.ReviewAction
			Notes        *string
			ActionsTaken []string
			ReviewedAt   time.Time
		}
		AppendHistory []struct {
			Item *domain.ReviewItem
		}
		Stats []struct{}
	}
	lockEnqueue       sync.RWMutex
	lockGetByID       sync.RWMutex
	lockList          sync.RWMutex
	lockMarkResolved  sync.RWMutex
	lockAppendHistory sync.RWMutex
	lockStats         sync.RWMutex
}

func (mock *queueRepoMock) Enqueue(ctx context.Context, item *domain.ReviewItem) (*domain.ReviewItem, error) {
	if mock.EnqueueFunc == nil {
		panic("queueRepoMock.EnqueueFunc: method is nil but queueRepo.Enqueue was just called")
	}
	callInfo := struct {
		Item *domain.ReviewItem
	}{Item: item}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, callInfo)
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, item)
}

func (mock *queueRepoMock) EnqueueCalls() []struct {
	Item *domain.ReviewItem
} {
	mock.lockEnqueue.RLock()
	calls := mock.calls.Enqueue
	mock.lockEnqueue.RUnlock()
	return calls
}

func (mock *queueRepoMock) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.ReviewItem, error) {
	if mock.GetByIDFunc == nil {
		panic("queueRepoMock.GetByIDFunc: method is nil but queueRepo.GetByID was just called")
	}
	callInfo := struct {
		ReviewID uuid.UUID
	}{ReviewID: reviewID}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, reviewID)
}

func (mock *queueRepoMock) GetByIDCalls() []struct {
	ReviewID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *queueRepoMock) List(ctx context.Context, status *domain.ReviewStatus, priority *domain.ReviewPriority, limit, offset int) ([]*domain.ReviewItem, error) {
	if mock.ListFunc == nil {
		panic("queueRepoMock.ListFunc: method is nil but queueRepo.List was just called")
	}
	callInfo := struct {
		Status   *domain.ReviewStatus
		Priority *domain.ReviewPriority
		Limit    int
		Offset   int
	}{Status: status, Priority: priority, Limit: limit, Offset: offset}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, status, priority, limit, offset)
}

func (mock *queueRepoMock) ListCalls() []struct {
	Status   *domain.ReviewStatus
	Priority *domain.ReviewPriority
	Limit    int
	Offset   int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *queueRepoMock) MarkResolved(ctx context.Context, reviewID, adminID uuid.UUID, decision domain.ReviewAction, notes *string, actionsTaken []string, reviewedAt time.Time) (*domain.ReviewItem, error) {
	if mock.MarkResolvedFunc == nil {
		panic("queueRepoMock.MarkResolvedFunc: method is nil but queueRepo.MarkResolved was just called")
	}
	callInfo := struct {
		ReviewID     uuid.UUID
		AdminID      uuid.UUID
		Decision     domain.ReviewAction
		Notes        *string
		ActionsTaken []string
		ReviewedAt   time.Time
	}{ReviewID: reviewID, AdminID: adminID, Decision: decision, Notes: notes, ActionsTaken: actionsTaken, ReviewedAt: reviewedAt}
	mock.lockMarkResolved.Lock()
	mock.calls.MarkResolved = append(mock.calls.MarkResolved, callInfo)
	mock.lockMarkResolved.Unlock()
	return mock.MarkResolvedFunc(ctx, reviewID, adminID, decision, notes, actionsTaken, reviewedAt)
}

func (mock *queueRepoMock) MarkResolvedCalls() []struct {
	ReviewID     uuid.UUID
	AdminID      uuid.UUID
	Decision     domain.ReviewAction
	Notes        *string
	ActionsTaken []string
	ReviewedAt   time.Time
} {
	mock.lockMarkResolved.RLock()
	calls := mock.calls.MarkResolved
	mock.lockMarkResolved.RUnlock()
	return calls
}

func (mock *queueRepoMock) AppendHistory(ctx context.Context, item *domain.ReviewItem) error {
	if mock.AppendHistoryFunc == nil {
		panic("queueRepoMock.AppendHistoryFunc: method is nil but queueRepo.AppendHistory was just called")
	}
	callInfo := struct {
		Item *domain.ReviewItem
	}{Item: item}
	mock.lockAppendHistory.Lock()
	mock.calls.AppendHistory = append(mock.calls.AppendHistory, callInfo)
	mock.lockAppendHistory.Unlock()
	return mock.AppendHistoryFunc(ctx, item)
}

func (mock *queueRepoMock) AppendHistoryCalls() []struct {
	Item *domain.ReviewItem
} {
	mock.lockAppendHistory.RLock()
	calls := mock.calls.AppendHistory
	mock.lockAppendHistory.RUnlock()
	return calls
}

func (mock *queueRepoMock) Stats(ctx context.Context) (domain.QueueStats, error) {
	if mock.StatsFunc == nil {
		panic("queueRepoMock.StatsFunc: method is nil but queueRepo.Stats was just called")
	}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, struct{}{})
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *queueRepoMock) StatsCalls() []struct{} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}

var _ feedbackRepo = &feedbackRepoMock{}

type feedbackRepoMock struct {
	CreateFunc   func(ctx context.Context, f *domain.FeedbackRecord) error
	InsightsFunc func(ctx context.Context, ratingThreshold float64) (*domain.FeedbackInsights, error)

	calls struct {
		Create []struct {
			F *domain.FeedbackRecord
		}
		Insights []struct {
			RatingThreshold float64
		}
	}
	lockCreate   sync.RWMutex
	lockInsights sync.RWMutex
}

func (mock *feedbackRepoMock) Create(ctx context.Context, f *domain.FeedbackRecord) error {
	if mock.CreateFunc == nil {
		panic("feedbackRepoMock.CreateFunc: method is nil but feedbackRepo.Create was just called")
	}
	callInfo := struct {
		F *domain.FeedbackRecord
	}{F: f}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, f)
}

func (mock *feedbackRepoMock) CreateCalls() []struct {
	F *domain.FeedbackRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *feedbackRepoMock) Insights(ctx context.Context, ratingThreshold float64) (*domain.FeedbackInsights, error) {
	if mock.InsightsFunc == nil {
		panic("feedbackRepoMock.InsightsFunc: method is nil but feedbackRepo.Insights was just called")
	}
	callInfo := struct {
		RatingThreshold float64
	}{RatingThreshold: ratingThreshold}
	mock.lockInsights.Lock()
	mock.calls.Insights = append(mock.calls.Insights, callInfo)
	mock.lockInsights.Unlock()
	return mock.InsightsFunc(ctx, ratingThreshold)
}

func (mock *feedbackRepoMock) InsightsCalls() []struct {
	RatingThreshold float64
} {
	mock.lockInsights.RLock()
	calls := mock.calls.Insights
	mock.lockInsights.RUnlock()
	return calls
}

var _ remediator = &remediatorMock{}

type remediatorMock struct {
	CorrectFunc func(ctx context.Context, concept string, analysis *domain.BiasAnalysis) error

	calls struct {
		Correct []struct {
			Concept  string
			Analysis *domain.BiasAnalysis
		}
	}
	lockCorrect sync.RWMutex
}

func (mock *remediatorMock) Correct(ctx context.Context, concept string, analysis *domain.BiasAnalysis) error {
	if mock.CorrectFunc == nil {
		panic("remediatorMock.CorrectFunc: method is nil but remediator.Correct was just called")
	}
	callInfo := struct {
		Concept  string
		Analysis *domain.BiasAnalysis
	}{Concept: concept, Analysis: analysis}
	mock.lockCorrect.Lock()
	mock.calls.Correct = append(mock.calls.Correct, callInfo)
	mock.lockCorrect.Unlock()
	return mock.CorrectFunc(ctx, concept, analysis)
}

func (mock *remediatorMock) CorrectCalls() []struct {
	Concept  string
	Analysis *domain.BiasAnalysis
} {
	mock.lockCorrect.RLock()
	calls := mock.calls.Correct
	mock.lockCorrect.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
