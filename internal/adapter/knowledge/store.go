// Package knowledge implements the Weaviate-backed knowledge base that the
// quiz generator draws teaching material from. Corrective updates written
// here override previously stored biased content.
package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/quizforge/quizmod-backend/internal/config"
)

// Store provides access to the educational content class in Weaviate.
// Safe for concurrent use.
type Store struct {
	client    *weaviate.Client
	className string
	topK      int
	timeout   time.Duration
	log       *slog.Logger
}

// New creates a Store from configuration.
func New(cfg config.KnowledgeConfig, log *slog.Logger) (*Store, error) {
	client, err := weaviate.NewClient(weaviate.Config{
		Host:   cfg.Host,
		Scheme: cfg.Scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}

	return &Store{
		client:    client,
		className: cfg.ClassName,
		topK:      cfg.TopK,
		timeout:   cfg.Timeout,
		log:       log.With("adapter", "knowledge"),
	}, nil
}

// EnsureSchema creates the content class if it does not exist yet.
// Idempotent; call at startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.Schema().ClassGetter().WithClassName(s.className).Do(ctx)
	if err == nil {
		return nil
	}

	class := &models.Class{
		Class:       s.className,
		Description: "Educational teaching material served to the quiz generator.",
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}, Description: "The teaching material itself."},
			{Name: "concept", DataType: []string{"text"}, Description: "Concept this material covers."},
			{Name: "biasCorrected", DataType: []string{"boolean"}, Description: "Whether this entry replaces biased content."},
			{Name: "biasTypesAddressed", DataType: []string{"text[]"}, Description: "Bias categories the rewrite addressed."},
			{Name: "updatedAt", DataType: []string{"date"}, Description: "When this entry was written."},
		},
	}

	if err := s.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("create class %s: %w", s.className, err)
	}

	s.log.InfoContext(ctx, "knowledge class created", slog.String("class", s.className))
	return nil
}

// AddCorrective stores replacement content for a concept whose previous
// material was found biased. The bias_corrected metadata lets later audits
// tell rewrites apart from original material.
func (s *Store) AddCorrective(ctx context.Context, concept, content string, biasTypes []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.Data().Creator().
		WithClassName(s.className).
		WithProperties(map[string]any{
			"content":            content,
			"concept":            concept,
			"biasCorrected":      true,
			"biasTypesAddressed": biasTypes,
			"updatedAt":          time.Now().UTC().Format(time.RFC3339),
		}).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("add corrective content for %q: %w", concept, err)
	}

	s.log.InfoContext(ctx, "corrective content stored",
		slog.String("concept", concept),
		slog.Any("bias_types", biasTypes),
	)
	return nil
}

// SeedBaseline writes the built-in teaching material into the store. Used
// by cmd/seed-knowledge to bootstrap a fresh deployment; corrective updates
// later outrank these entries only by being retrieved alongside them.
func (s *Store) SeedBaseline(ctx context.Context) error {
	for concept, content := range builtinKnowledge {
		opCtx, cancel := context.WithTimeout(ctx, s.timeout)
		_, err := s.client.Data().Creator().
			WithClassName(s.className).
			WithProperties(map[string]any{
				"content":            content,
				"concept":            concept,
				"biasCorrected":      false,
				"biasTypesAddressed": []string{},
				"updatedAt":          time.Now().UTC().Format(time.RFC3339),
			}).
			Do(opCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("seed baseline content for %q: %w", concept, err)
		}
		s.log.InfoContext(ctx, "baseline content stored", slog.String("concept", concept))
	}
	return nil
}

// Retrieve returns combined teaching material for a concept at a difficulty
// level. When the store is empty or unreachable the built-in defaults are
// returned instead, so quiz generation keeps working without a vector store.
func (s *Store) Retrieve(ctx context.Context, concept, difficulty string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := fmt.Sprintf("%s %s education for children", concept, difficulty)

	nearText := s.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	result, err := s.client.GraphQL().Get().
		WithClassName(s.className).
		WithFields(
			graphql.Field{Name: "content"},
			graphql.Field{Name: "concept"},
			graphql.Field{Name: "biasCorrected"},
		).
		WithNearText(nearText).
		WithLimit(s.topK).
		Do(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "knowledge retrieval failed, using defaults",
			slog.String("concept", concept), slog.String("error", err.Error()))
		return defaultKnowledge(concept, difficulty), nil
	}
	if len(result.Errors) > 0 {
		s.log.WarnContext(ctx, "knowledge query error, using defaults",
			slog.String("concept", concept), slog.String("error", result.Errors[0].Message))
		return defaultKnowledge(concept, difficulty), nil
	}

	docs := parseContents(result, s.className)
	if len(docs) == 0 {
		s.log.WarnContext(ctx, "no documents in knowledge base, using defaults",
			slog.String("concept", concept))
		return defaultKnowledge(concept, difficulty), nil
	}

	s.log.InfoContext(ctx, "knowledge retrieved",
		slog.String("concept", concept),
		slog.Int("documents", len(docs)),
	)
	return strings.Join(docs, "\n\n"), nil
}

func parseContents(result *models.GraphQLResponse, className string) []string {
	data, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return nil
	}

	objects, ok := data[className].([]interface{})
	if !ok {
		return nil
	}

	contents := make([]string, 0, len(objects))
	for _, obj := range objects {
		m, ok := obj.(map[string]interface{})
		if !ok {
			continue
		}
		if content, ok := m["content"].(string); ok && content != "" {
			contents = append(contents, content)
		}
	}
	return contents
}
