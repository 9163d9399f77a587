// Package remediation turns a confirmed bias finding into a corrective
// knowledge-base update: new inclusive content is generated and stored so
// future quizzes draw from it instead of the biased material.
package remediation

import (
	"context"
	"log/slog"

	"github.com/quizforge/quizmod-backend/internal/domain"
)

type contentGenerator interface {
	GenerateCorrectiveContent(ctx context.Context, concept string, analysis *domain.BiasAnalysis) (string, error)
}

type knowledgeStore interface {
	AddCorrective(ctx context.Context, concept, content string, biasTypes []string) error
}

// Service generates and persists corrective content.
type Service struct {
	generator contentGenerator
	store     knowledgeStore
	log       *slog.Logger
}

// NewService creates a new remediation service.
func NewService(
	log *slog.Logger,
	generator contentGenerator,
	store knowledgeStore,
) *Service {
	return &Service{
		generator: generator,
		store:     store,
		log:       log.With("service", "remediation"),
	}
}

// Correct generates bias-free replacement content for the concept and writes
// it to the knowledge base. Re-running for the same concept adds another
// corrective entry rather than failing, so retries after partial failure are
// safe.
func (s *Service) Correct(ctx context.Context, concept string, analysis *domain.BiasAnalysis) error {
	content, err := s.generator.GenerateCorrectiveContent(ctx, concept, analysis)
	if err != nil {
		return &domain.RemediationError{Concept: concept, Cause: err}
	}

	if err := s.store.AddCorrective(ctx, concept, content, analysis.BiasTypes); err != nil {
		return &domain.RemediationError{Concept: concept, Cause: err}
	}

	s.log.InfoContext(ctx, "knowledge base corrected",
		slog.String("concept", concept),
		slog.Any("bias_types", analysis.BiasTypes),
		slog.String("severity", string(analysis.Severity)),
	)

	return nil
}
