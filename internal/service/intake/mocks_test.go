package intake

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quizforge/quizmod-backend/internal/domain"
)

var _ feedbackRepo = &feedbackRepoMock{}

type feedbackRepoMock struct {
	CreateFunc        func(ctx context.Context, f *domain.FeedbackRecord) error
	MarkProcessedFunc func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Create []struct {
			F *domain.FeedbackRecord
		}
		MarkProcessed []struct {
			ID uuid.UUID
		}
	}
	lockCreate        sync.RWMutex
	lockMarkProcessed sync.RWMutex
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

func (mock *feedbackRepoMock) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	if mock.MarkProcessedFunc == nil {
		panic("feedbackRepoMock.MarkProcessedFunc: method is nil but feedbackRepo.MarkProcessed was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{ID: id}
	mock.lockMarkProcessed.Lock()
	mock.calls.MarkProcessed = append(mock.calls.MarkProcessed, callInfo)
	mock.lockMarkProcessed.Unlock()
	return mock.MarkProcessedFunc(ctx, id)
}

func (mock *feedbackRepoMock) MarkProcessedCalls() []struct {
	ID uuid.UUID
} {
	mock.lockMarkProcessed.RLock()
	calls := mock.calls.MarkProcessed
	mock.lockMarkProcessed.RUnlock()
	return calls
}

var _ queueRepo = &queueRepoMock{}

type queueRepoMock struct {
	EnqueueFunc func(ctx context.Context, item *domain.ReviewItem) (*domain.ReviewItem, error)

	calls struct {
		Enqueue []struct {
			Item *domain.ReviewItem
		}
	}
	lockEnqueue sync.RWMutex
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

var _ biasClassifier = &biasClassifierMock{}

type biasClassifierMock struct {
	ClassifyBiasFunc func(ctx context.Context, concept, feedbackText, userID string) (*domain.BiasAnalysis, error)

	calls struct {
		ClassifyBias []struct {
			Concept      string
			FeedbackText string
			UserID       string
		}
	}
	lockClassifyBias sync.RWMutex
}

func (mock *biasClassifierMock) ClassifyBias(ctx context.Context, concept, feedbackText, userID string) (*domain.BiasAnalysis, error) {
	if mock.ClassifyBiasFunc == nil {
		panic("biasClassifierMock.ClassifyBiasFunc: method is nil but biasClassifier.ClassifyBias was just called")
	}
	callInfo := struct {
		Concept      string
		FeedbackText string
		UserID       string
	}{Concept: concept, FeedbackText: feedbackText, UserID: userID}
	mock.lockClassifyBias.Lock()
	mock.calls.ClassifyBias = append(mock.calls.ClassifyBias, callInfo)
	mock.lockClassifyBias.Unlock()
	return mock.ClassifyBiasFunc(ctx, concept, feedbackText, userID)
}

func (mock *biasClassifierMock) ClassifyBiasCalls() []struct {
	Concept      string
	FeedbackText string
	UserID       string
} {
	mock.lockClassifyBias.RLock()
	calls := mock.calls.ClassifyBias
	mock.lockClassifyBias.RUnlock()
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
