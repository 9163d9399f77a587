package remediation

import (
	"context"
	"sync"

	"github.com/quizforge/quizmod-backend/internal/domain"
)

var _ contentGenerator = &contentGeneratorMock{}

type contentGeneratorMock struct {
	GenerateCorrectiveContentFunc func(ctx context.Context, concept string, analysis *domain.BiasAnalysis) (string, error)

	calls struct {
		GenerateCorrectiveContent []struct {
			Concept  string
			Analysis *domain.BiasAnalysis
		}
	}
	lockGenerateCorrectiveContent sync.RWMutex
}

func (mock *contentGeneratorMock) GenerateCorrectiveContent(ctx context.Context, concept string, analysis *domain.BiasAnalysis) (string, error) {
	if mock.GenerateCorrectiveContentFunc == nil {
		panic("contentGeneratorMock.GenerateCorrectiveContentFunc: method is nil but contentGenerator.GenerateCorrectiveContent was just called")
	}
	callInfo := struct {
		Concept  string
		Analysis *domain.BiasAnalysis
	}{Concept: concept, Analysis: analysis}
	mock.lockGenerateCorrectiveContent.Lock()
	mock.calls.GenerateCorrectiveContent = append(mock.calls.GenerateCorrectiveContent, callInfo)
	mock.lockGenerateCorrectiveContent.Unlock()
	return mock.GenerateCorrectiveContentFunc(ctx, concept, analysis)
}

func (mock *contentGeneratorMock) GenerateCorrectiveContentCalls() []struct {
	Concept  string
	Analysis *domain.BiasAnalysis
} {
	mock.lockGenerateCorrectiveContent.RLock()
	calls := mock.calls.GenerateCorrectiveContent
	mock.lockGenerateCorrectiveContent.RUnlock()
	return calls
}

var _ knowledgeStore = &knowledgeStoreMock{}

type knowledgeStoreMock struct {
	AddCorrectiveFunc func(ctx context.Context, concept, content string, biasTypes []string) error

	calls struct {
		AddCorrective []struct {
			Concept   string
			Content   string
			BiasTypes []string
		}
	}
	lockAddCorrective sync.RWMutex
}

func (mock *knowledgeStoreMock) AddCorrective(ctx context.Context, concept, content string, biasTypes []string) error {
	if mock.AddCorrectiveFunc == nil {
		panic("knowledgeStoreMock.AddCorrectiveFunc: method is nil but knowledgeStore.AddCorrective was just called")
	}
	callInfo := struct {
		Concept   string
		Content   string
		BiasTypes []string
	}{Concept: concept, Content: content, BiasTypes: biasTypes}
	mock.lockAddCorrective.Lock()
	mock.calls.AddCorrective = append(mock.calls.AddCorrective, callInfo)
	mock.lockAddCorrective.Unlock()
	return mock.AddCorrectiveFunc(ctx, concept, content, biasTypes)
}

func (mock *knowledgeStoreMock) AddCorrectiveCalls() []struct {
	Concept   string
	Content   string
	BiasTypes []string
} {
	mock.lockAddCorrective.RLock()
	calls := mock.calls.AddCorrective
	mock.lockAddCorrective.RUnlock()
	return calls
}
